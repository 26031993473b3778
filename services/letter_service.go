package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"novaLetterAPI/internal/board"
	"novaLetterAPI/internal/types/letter"
)

const lettersCollection = "letters"

// indexFallbackWarning is surfaced to the client when the ordered query had
// to be replaced by an unordered fetch plus in-memory sort.
const indexFallbackWarning = "Letters were sorted locally because the database index is still building; ordering may be slow."

var (
	// ErrStorageUnavailable is returned when the service was constructed
	// without Firestore credentials. Composition and export keep working;
	// only save/load is gated.
	ErrStorageUnavailable = errors.New("letter storage is not configured")

	// ErrLetterNotFound is returned for missing documents and for documents
	// owned by another user, so ids cannot be probed across accounts.
	ErrLetterNotFound = errors.New("letter not found")
)

// LetterService is the persistence layer for saved letters, scoped by the
// authenticated user.
type LetterService struct {
	db *firestore.Client
}

// NewLetterService accepts a nil client; every operation then reports
// ErrStorageUnavailable instead of panicking, per the graceful-degradation
// contract for missing backend credentials.
func NewLetterService(db *firestore.Client) *LetterService {
	return &LetterService{db: db}
}

func (s *LetterService) Available() bool { return s.db != nil }

// List returns the user's letters ordered by creation time descending. If
// the backing store rejects the ordered query because its composite index is
// missing, the fetch falls back to an unordered query with an in-memory sort
// and a non-fatal warning, rather than failing. An optional q filters by
// title, case-insensitively.
func (s *LetterService) List(ctx context.Context, userID, q string) ([]letter.Letter, string, error) {
	if s.db == nil {
		return nil, "", ErrStorageUnavailable
	}

	warning := ""
	query := s.db.Collection(lettersCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		if status.Code(err) != codes.FailedPrecondition {
			return nil, "", fmt.Errorf("failed to query letters: %w", err)
		}
		log.Printf("LetterService: ordered query failed (missing index), falling back to in-memory sort: %v", err)
		docs, err = s.db.Collection(lettersCollection).
			Where("userId", "==", userID).
			Documents(ctx).GetAll()
		if err != nil {
			return nil, "", fmt.Errorf("failed to query letters: %w", err)
		}
		warning = indexFallbackWarning
	}

	letters := make([]letter.Letter, 0, len(docs))
	for _, doc := range docs {
		var l letter.Letter
		if err := doc.DataTo(&l); err != nil {
			log.Printf("LetterService: skipping malformed letter %s: %v", doc.Ref.ID, err)
			continue
		}
		l.ID = doc.Ref.ID
		if l.Stickers == nil {
			l.Stickers = []letter.Sticker{}
		}
		letters = append(letters, l)
	}

	if warning != "" {
		sort.Slice(letters, func(i, j int) bool {
			return letters[i].CreatedAt.After(letters[j].CreatedAt)
		})
	}

	if q != "" {
		needle := strings.ToLower(q)
		filtered := letters[:0]
		for _, l := range letters {
			if strings.Contains(strings.ToLower(l.Title), needle) {
				filtered = append(filtered, l)
			}
		}
		letters = filtered
	}

	return letters, warning, nil
}

// Get fetches one letter owned by userID.
func (s *LetterService) Get(ctx context.Context, userID, id string) (*letter.Letter, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	doc, err := s.db.Collection(lettersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrLetterNotFound
		}
		return nil, fmt.Errorf("failed to fetch letter: %w", err)
	}

	var l letter.Letter
	if err := doc.DataTo(&l); err != nil {
		return nil, fmt.Errorf("failed to decode letter: %w", err)
	}
	if l.UserID != userID {
		return nil, ErrLetterNotFound
	}
	l.ID = doc.Ref.ID
	if l.Stickers == nil {
		l.Stickers = []letter.Sticker{}
	}
	return &l, nil
}

// Create stores a new letter snapshot and returns it with server-assigned
// id and timestamps.
func (s *LetterService) Create(ctx context.Context, userID string, req *letter.CreateLetterRequest) (*letter.Letter, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	now := time.Now().UTC()
	l := letter.Letter{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		CreatedAt:   now,
		UpdatedAt:   now,
		Composition: req.Composition,
	}
	if l.Stickers == nil {
		l.Stickers = []letter.Sticker{}
	}
	if l.Alignment == "" {
		l.Alignment = letter.AlignLeft
	}

	if _, err := s.db.Collection(lettersCollection).Doc(l.ID).Set(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create letter: %w", err)
	}
	return &l, nil
}

// Update applies a partial update to a letter the user owns and returns the
// updated snapshot.
func (s *LetterService) Update(ctx context.Context, userID, id string, req *letter.UpdateLetterRequest) (*letter.Letter, error) {
	l, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Content != nil {
		l.Content = *req.Content
	}
	if req.Font != nil {
		l.Font = *req.Font
	}
	if req.Paper != nil {
		l.Paper = *req.Paper
	}
	if req.Color != nil {
		l.Color = *req.Color
	}
	if req.Alignment != nil {
		if !req.Alignment.Valid() {
			return nil, fmt.Errorf("invalid alignment %q", *req.Alignment)
		}
		l.Alignment = *req.Alignment
	}
	if req.Signature != nil {
		l.Signature = *req.Signature
	}
	if req.Stickers != nil {
		l.Stickers = *req.Stickers
	}
	l.UpdatedAt = time.Now().UTC()

	if _, err := s.db.Collection(lettersCollection).Doc(id).Set(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update letter: %w", err)
	}
	return l, nil
}

// Delete removes a letter the user owns.
func (s *LetterService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if _, err := s.db.Collection(lettersCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete letter: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *LetterService) ToggleFavorite(ctx context.Context, userID, id string) (bool, error) {
	l, err := s.Get(ctx, userID, id)
	if err != nil {
		return false, err
	}

	updated := !l.Favorite
	_, err = s.db.Collection(lettersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "favorite", Value: updated},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return false, fmt.Errorf("failed to update favorite flag: %w", err)
	}
	return updated, nil
}

// withBoard loads the letter, hands its stickers to the placement engine,
// persists the result and returns the updated list. All placement rules
// live in the board; this is just the storage glue around one operation.
func (s *LetterService) withBoard(ctx context.Context, userID, id string, op func(*board.Board)) ([]letter.Sticker, error) {
	l, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	b := board.Load(l.Stickers)
	op(b)

	stickers := b.Stickers()
	if stickers == nil {
		stickers = []letter.Sticker{}
	}
	_, err = s.db.Collection(lettersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "stickers", Value: stickers},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save stickers: %w", err)
	}
	return stickers, nil
}

// AddSticker places a new sticker of the given catalog type.
func (s *LetterService) AddSticker(ctx context.Context, userID, id, stickerType string) ([]letter.Sticker, error) {
	return s.withBoard(ctx, userID, id, func(b *board.Board) {
		b.Add(stickerType)
	})
}

// UpdateSticker applies a move and/or resize to one sticker. Unknown
// sticker ids are a no-op by the board's contract.
func (s *LetterService) UpdateSticker(ctx context.Context, userID, id, stickerID string, req *letter.UpdateStickerRequest) ([]letter.Sticker, error) {
	return s.withBoard(ctx, userID, id, func(b *board.Board) {
		if req.Size != nil {
			b.Resize(stickerID, *req.Size)
		}
		if req.X != nil || req.Y != nil {
			cur := b.Select(stickerID)
			if cur == nil {
				return
			}
			x, y := cur.X, cur.Y
			if req.X != nil {
				x = *req.X
			}
			if req.Y != nil {
				y = *req.Y
			}
			b.Move(stickerID, x, y)
		}
	})
}

// DuplicateSticker copies one sticker with the board's offset rules.
func (s *LetterService) DuplicateSticker(ctx context.Context, userID, id, stickerID string) ([]letter.Sticker, error) {
	return s.withBoard(ctx, userID, id, func(b *board.Board) {
		b.Duplicate(stickerID)
	})
}

// DeleteSticker removes one sticker.
func (s *LetterService) DeleteSticker(ctx context.Context, userID, id, stickerID string) ([]letter.Sticker, error) {
	return s.withBoard(ctx, userID, id, func(b *board.Board) {
		b.Delete(stickerID)
	})
}
