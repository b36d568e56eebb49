package portal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrForbiddenUser is returned when a settings write names a different
// user than the authenticated one.
var ErrForbiddenUser = errors.New("cannot update settings for another user")

// storeTimeout bounds every settings store call. Timeouts surface as
// store errors to the caller; the service never retries.
const storeTimeout = 5 * time.Second

// Notifier pushes an updated document to every live session subscribed to
// the user's channel. Best effort: no subscribers means no delivery and
// no error.
type Notifier interface {
	Publish(userID string, settings *PortalSettings)
}

// CommandResult is what a command endpoint returns to its caller.
// UpdatedSettings always carries the current document, even on NoOp, so
// clients can treat the response uniformly.
type CommandResult struct {
	Message         string          `json:"message"`
	UpdatedSettings *PortalSettings `json:"updatedSettings"`
}

type PortalService interface {
	GetSettings(ctx context.Context, userID string) (*PortalSettings, error)
	UpdateSettings(ctx context.Context, userID string, incoming *PortalSettings) (*PortalSettings, error)
	ExecuteCommand(ctx context.Context, userID, command string) (*CommandResult, error)
	ExecuteAction(ctx context.Context, userID string, action Action) (*CommandResult, error)
}

type PortalServiceImpl struct {
	Repo     SettingsRepository
	Notifier Notifier
	Logger   *zap.Logger
}

func NewPortalService(repo SettingsRepository, notifier Notifier, logger *zap.Logger) PortalService {
	return &PortalServiceImpl{
		Repo:     repo,
		Notifier: notifier,
		Logger:   logger,
	}
}

// GetSettings returns the user's document, creating the default one on
// first access. Creation races resolve through the store's unique
// constraint: attempt the insert, and on a duplicate re-fetch the winner.
func (s *PortalServiceImpl) GetSettings(ctx context.Context, userID string) (*PortalSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	settings, err := s.Repo.Find(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, err
	}

	defaults := DefaultSettings(userID)
	if err := s.Repo.Insert(ctx, defaults); err != nil {
		if errors.Is(err, ErrSettingsExists) {
			return s.Repo.Find(ctx, userID)
		}
		return nil, err
	}
	return defaults, nil
}

// UpdateSettings replaces the stored document wholesale and notifies the
// user's live sessions.
func (s *PortalServiceImpl) UpdateSettings(ctx context.Context, userID string, incoming *PortalSettings) (*PortalSettings, error) {
	if incoming.UserID != "" && incoming.UserID != userID {
		return nil, ErrForbiddenUser
	}
	incoming.UserID = userID
	if incoming.Layout == nil {
		incoming.Layout = []Widget{}
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	stored, err := s.Repo.Upsert(ctx, incoming)
	if err != nil {
		return nil, err
	}

	s.Notifier.Publish(userID, stored)
	return stored, nil
}

// ExecuteCommand resolves a free-text command and runs it.
func (s *PortalServiceImpl) ExecuteCommand(ctx context.Context, userID, command string) (*CommandResult, error) {
	return s.ExecuteAction(ctx, userID, ResolveCommand(command))
}

// ExecuteAction runs load-or-create, mutate, persist, notify. Persist
// always precedes notify so sessions never observe a document that is not
// yet durable. NoOp actions skip both.
func (s *PortalServiceImpl) ExecuteAction(ctx context.Context, userID string, action Action) (*CommandResult, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := Apply(settings, action)
	if err != nil {
		return nil, err
	}

	if !result.Changed {
		return &CommandResult{
			Message:         result.Message,
			UpdatedSettings: result.Settings,
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	stored, err := s.Repo.Upsert(ctx, result.Settings)
	if err != nil {
		return nil, err
	}

	s.Notifier.Publish(userID, stored)

	s.Logger.Info("Portal command applied",
		zap.String("userId", userID),
		zap.String("action", string(action.Type)),
	)

	return &CommandResult{
		Message:         result.Message,
		UpdatedSettings: stored,
	}, nil
}
