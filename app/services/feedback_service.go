package services

import (
	"context"

	"feedback-board/app/authz"
	"feedback-board/app/models"
	"feedback-board/app/repo"
)

// FeedbackService routes every mutation through the ownership guard. The
// caller's identity is an explicit parameter on each call, never ambient
// state.
type FeedbackService struct {
	feedback *repo.FeedbackRepository
	users    *repo.UserRepository
}

func NewFeedbackService(feedback *repo.FeedbackRepository, users *repo.UserRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, users: users}
}

// Create stores new feedback under the authorized identity. The owner is
// always taken from ident, never from the request payload.
func (s *FeedbackService) Create(ctx context.Context, ident authz.Identity, title, content string) (*models.Feedback, error) {
	username, _ := ident.Username()
	if err := authz.OwnerAction(ident, username); err != nil {
		return nil, err
	}
	fb := &models.Feedback{Title: title, Content: content, Username: username}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// Get is a public read; no guard.
func (s *FeedbackService) Get(ctx context.Context, id uint) (*models.Feedback, error) {
	return s.feedback.FindByID(ctx, id)
}

// Update mutates title and content of an owned feedback item. The owner is
// resolved from the feedback row itself; a missing id fails with
// repo.ErrNotFound before the guard is consulted.
func (s *FeedbackService) Update(ctx context.Context, ident authz.Identity, id uint, title, content string) (*models.Feedback, error) {
	fb, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.OwnerAction(ident, fb.Username); err != nil {
		return nil, err
	}
	if err := s.feedback.UpdateContent(ctx, id, title, content); err != nil {
		return nil, err
	}
	fb.Title, fb.Content = title, content
	return fb, nil
}

// Delete removes an owned feedback item, with the same resolve-then-guard
// order as Update.
func (s *FeedbackService) Delete(ctx context.Context, ident authz.Identity, id uint) error {
	fb, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.OwnerAction(ident, fb.Username); err != nil {
		return err
	}
	return s.feedback.Delete(ctx, id)
}

func (s *FeedbackService) ListByOwner(ctx context.Context, username string) ([]models.Feedback, error) {
	return s.feedback.ListByOwner(ctx, username)
}

// DeleteAccount removes the user and all feedback it owns as one atomic
// unit.
func (s *FeedbackService) DeleteAccount(ctx context.Context, ident authz.Identity, username string) error {
	if err := authz.OwnerAction(ident, username); err != nil {
		return err
	}
	return s.users.DeleteCascade(ctx, username)
}
