package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subcheck/internal/domain"
	"subcheck/internal/service"
	"subcheck/internal/session"
)

func TestSessionService_SetMasterListInvalidatesResults(t *testing.T) {
	store := session.NewStore()
	svc := service.NewSessionService(store)
	ctx := context.Background()

	sess, err := svc.Create(ctx)
	require.NoError(t, err)

	// Simulate a completed check.
	_, err = store.Update(ctx, sess.ID, func(s *domain.Session) error {
		s.Phase = domain.PhaseChecked
		s.Completeness = &domain.CompletenessResult{AllProvided: true}
		return nil
	})
	require.NoError(t, err)

	master := pdfFile("master_v2.pdf")
	updated, err := svc.SetMasterList(ctx, sess.ID, &master)
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseIdle, updated.Phase)
	assert.Nil(t, updated.Completeness)
	assert.Nil(t, updated.Analysis)
	require.NotNil(t, updated.MasterList)
	assert.Equal(t, "master_v2.pdf", updated.MasterList.OriginalName)
}

func TestSessionService_AddAndRemoveDatasheets(t *testing.T) {
	store := session.NewStore()
	svc := service.NewSessionService(store)
	ctx := context.Background()

	sess, err := svc.Create(ctx)
	require.NoError(t, err)

	a := pdfFile("a.pdf")
	a.ID = uuid.New()
	b := pdfFile("b.pdf")
	b.ID = uuid.New()

	updated, err := svc.AddDatasheets(ctx, sess.ID, []domain.IngestedFile{a, b})
	require.NoError(t, err)
	require.Len(t, updated.Datasheets, 2)

	updated, err = svc.RemoveDatasheet(ctx, sess.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, updated.Datasheets, 1)
	assert.Equal(t, "b.pdf", updated.Datasheets[0].OriginalName)

	_, err = svc.RemoveDatasheet(ctx, sess.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_MutationRejectedWhileInFlight(t *testing.T) {
	store := session.NewStore()
	svc := service.NewSessionService(store)
	ctx := context.Background()

	sess, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = store.Update(ctx, sess.ID, func(s *domain.Session) error {
		s.Phase = domain.PhaseChecking
		return nil
	})
	require.NoError(t, err)

	master := pdfFile("master.pdf")
	_, err = svc.SetMasterList(ctx, sess.ID, &master)
	assert.ErrorIs(t, err, domain.ErrPhaseConflict)

	_, err = svc.AddDatasheets(ctx, sess.ID, []domain.IngestedFile{pdfFile("a.pdf")})
	assert.ErrorIs(t, err, domain.ErrPhaseConflict)
}

func TestSessionService_Reset(t *testing.T) {
	store := session.NewStore()
	svc := service.NewSessionService(store)
	ctx := context.Background()

	sess, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = store.Update(ctx, sess.ID, func(s *domain.Session) error {
		master := pdfFile("master.pdf")
		s.MasterList = &master
		s.Datasheets = append(s.Datasheets, pdfFile("a.pdf"))
		s.Phase = domain.PhaseFailed
		s.LastError = "boom"
		return nil
	})
	require.NoError(t, err)

	reset, err := svc.Reset(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseIdle, reset.Phase)
	assert.Nil(t, reset.MasterList)
	assert.Empty(t, reset.Datasheets)
	assert.Empty(t, reset.LastError)
}
