// Package portfolio manages the user's watchlist positions stored in the
// per-user profile document on the backend.
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
)

// ProfileStore is the backend surface the service needs. *query.Client
// satisfies it.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error)
	InsertProfile(ctx context.Context, profile *models.UserProfile) error
	UpdateProfile(ctx context.Context, userID string, profile *models.UserProfile) error
}

// Service implements watchlist CRUD over whole-document profile writes.
// Every mutation is a read-modify-write of the full portfolio array; there is
// no server-side merge, so concurrent sessions race and the last writer wins.
type Service struct {
	store  ProfileStore
	logger *common.Logger
}

func NewService(store ProfileStore, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{store: store, logger: logger}
}

// AddPositionInput carries the raw form values for a new position. Shares and
// AvgPrice arrive as strings and are coerced; blanks coerce to zero.
type AddPositionInput struct {
	Symbol   string
	Name     string
	CUSIP    string
	Shares   string
	AvgPrice string
}

// ValidationError marks a rejected input; handlers map it to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EnsureProfile fetches the user's profile, creating an empty one on first
// login. The existence check and insert are separate requests, so two
// near-simultaneous first logins can double-insert; the backend's unique
// constraint on user_id resolves the loser.
func (s *Service) EnsureProfile(ctx context.Context, userID, email string) (*models.UserProfile, error) {
	profile, found, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if found {
		return profile, nil
	}

	fresh := &models.UserProfile{
		UserID:    userID,
		Email:     email,
		Portfolio: []models.Position{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertProfile(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Msg("Created profile on first login")
	return fresh, nil
}

// AddPosition validates and appends a new position, writes the whole
// document back, and returns the re-fetched profile so the caller renders
// what the backend actually stored.
func (s *Service) AddPosition(ctx context.Context, userID string, input AddPositionInput) (*models.UserProfile, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return nil, &ValidationError{Field: "symbol", Message: "ticker is required"}
	}
	if strings.TrimSpace(input.Shares) == "" {
		return nil, &ValidationError{Field: "shares", Message: "is required"}
	}
	if strings.TrimSpace(input.AvgPrice) == "" {
		return nil, &ValidationError{Field: "avg_price", Message: "is required"}
	}

	shares, err := coerceNumber(input.Shares)
	if err != nil {
		return nil, &ValidationError{Field: "shares", Message: "must be a number"}
	}
	if shares < 0 {
		return nil, &ValidationError{Field: "shares", Message: "cannot be negative"}
	}
	avgPrice, err := coerceNumber(input.AvgPrice)
	if err != nil {
		return nil, &ValidationError{Field: "avg_price", Message: "must be a number"}
	}
	if avgPrice < 0 {
		return nil, &ValidationError{Field: "avg_price", Message: "cannot be negative"}
	}

	profile, found, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no profile for user %s", userID)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = symbol
	}

	// Duplicate symbols are allowed (separate lots), just noted.
	if profile.HasSymbol(symbol) {
		s.logger.Info().Str("user_id", userID).Str("symbol", symbol).Msg("Adding second lot for symbol")
	}

	profile.Portfolio = append(profile.Portfolio, models.Position{
		ID:        uuid.New().String(),
		Symbol:    symbol,
		Name:      name,
		CUSIP:     strings.TrimSpace(input.CUSIP),
		Shares:    shares,
		AvgPrice:  avgPrice,
		DateAdded: time.Now().UTC(),
	})

	if err := s.store.UpdateProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("failed to save position: %w", err)
	}

	// Re-read so duplicate profile rows or a racing writer surface here
	// instead of drifting the session state.
	updated, _, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Position saved but re-fetch failed")
		return profile, nil
	}
	return updated, nil
}

// RemovePosition drops a position by id and writes the document back. The
// removal is optimistic: the trimmed profile is returned even when the write
// fails, which is logged and otherwise swallowed. A reload then resurrects
// the row.
func (s *Service) RemovePosition(ctx context.Context, userID, positionID string) (*models.UserProfile, error) {
	profile, found, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no profile for user %s", userID)
	}

	_, idx := profile.FindPosition(positionID)
	if idx < 0 {
		return profile, nil
	}
	profile.Portfolio = append(profile.Portfolio[:idx], profile.Portfolio[idx+1:]...)

	if err := s.store.UpdateProfile(ctx, userID, profile); err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", userID).
			Str("position_id", positionID).
			Msg("Failed to persist position removal")
	}
	return profile, nil
}

// coerceNumber parses a user-entered numeric string. Presence is checked by
// the caller; this only rejects unparseable input.
func coerceNumber(raw string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}
