package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
	"github.com/sakif/healthtrack/internal/sanitize"
)

type MoodService struct {
	repo   repository.MoodRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewMoodService(repo repository.MoodRepository, logger *slog.Logger) *MoodService {
	return &MoodService{repo: repo, logger: logger, now: time.Now}
}

// MoodInput is a mood entry as submitted. A nil StressLevel defaults to
// model.DefaultStressLevel.
type MoodInput struct {
	UserID      string    `json:"userId"`
	Mood        string    `json:"mood" validate:"required,max=50"`
	StressLevel *int      `json:"stressLevel" validate:"omitempty,gte=0,lte=10"`
	JournalText string    `json:"journalText" validate:"max=10000"`
	Date        time.Time `json:"date"`
}

func (s *MoodService) Create(ctx context.Context, in MoodInput) (*model.MoodEntry, error) {
	in.Mood = sanitize.Text(in.Mood)
	in.JournalText = sanitize.Text(in.JournalText)

	if err := validateInput(in, "Mood is required."); err != nil {
		return nil, err
	}

	entry := &model.MoodEntry{
		UserID:      in.UserID,
		Mood:        in.Mood,
		StressLevel: model.DefaultStressLevel,
		JournalText: in.JournalText,
		Date:        in.Date,
	}
	if in.StressLevel != nil {
		entry.StressLevel = *in.StressLevel
	}
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}

	if err := s.repo.CreateMood(ctx, entry); err != nil {
		s.logger.Error("failed to create mood entry",
			slog.String("userID", in.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating mood entry: %w", err)
	}

	s.logger.Info("mood entry created",
		slog.String("id", entry.ID),
		slog.String("userID", entry.UserID),
	)
	return entry, nil
}

// List returns the user's mood entries, newest first. With todayOnly set
// it returns at most one entry: the latest of the current local day.
func (s *MoodService) List(ctx context.Context, userID string, todayOnly bool) ([]model.MoodEntry, error) {
	var opts repository.ListOptions
	if todayOnly {
		opts.From, opts.To = todayRange(s.now())
		opts.Limit = 1
	}

	moods, err := s.repo.ListMoods(ctx, userID, opts)
	if err != nil {
		s.logger.Error("failed to list mood entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing mood entries: %w", err)
	}
	return moods, nil
}
