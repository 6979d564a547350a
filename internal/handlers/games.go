// This file handles the game routes — creating matchups, reading a single
// game, recording hole scores, and explicit status transitions.
//
// Scoring writes funnel through refreshTournament (snapshot.go): the engine
// recomputes every derived field from the raw holes, the transaction persists
// the lot, and the fresh snapshot is broadcast to websocket watchers.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/12ian34/ruffryder-api/internal/models"
	"github.com/12ian34/ruffryder-api/internal/scoring"
	"github.com/12ian34/ruffryder-api/internal/websocket"
)

// errGameLocked marks a scoring write against a completed game; the caller
// must revert the game to in_progress first.
var errGameLocked = errors.New("game is complete")

// CreateGameRequest is the JSON body for POST /api/v1/tournaments/:id/games.
// Holes carry the course configuration for this matchup: hole number, stroke
// index, and par. Stroke indices must form a permutation of 1..N — the
// request is rejected otherwise, because a broken table would corrupt every
// handicap computation downstream.
type CreateGameRequest struct {
	USAPlayerID        string  `json:"usa_player_id"`
	USAPlayerName      string  `json:"usa_player_name"`
	EuropePlayerID     string  `json:"europe_player_id"`
	EuropePlayerName   string  `json:"europe_player_name"`
	HandicapStrokes    int     `json:"handicap_strokes"`
	HigherHandicapTeam *string `json:"higher_handicap_team"` // "USA", "EUROPE", or null when handicaps are tied
	Holes              []struct {
		HoleNumber  int `json:"hole_number"`
		StrokeIndex int `json:"stroke_index"`
		Par         int `json:"par"`
	} `json:"holes"`
}

// RecordHoleScoreRequest is the JSON body for PUT /api/v1/games/:id/holes/:holeNumber.
// The body is the hole's full raw-score state: a null (or omitted) side clears
// any previously recorded score for that side. Corrections are allowed until
// the game is complete.
type RecordHoleScoreRequest struct {
	USAScore    *int `json:"usa_score"`
	EuropeScore *int `json:"europe_score"`
}

// UpdateGameStatusRequest is the JSON body for PUT /api/v1/games/:id/status.
type UpdateGameStatusRequest struct {
	Status string `json:"status"`
}

// CreateGame returns a handler for POST /api/v1/tournaments/:id/games.
func CreateGame(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var req CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.USAPlayerName == "" || req.EuropePlayerName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "both player names are required",
			})
		}
		usaPlayerID, err := uuid.Parse(req.USAPlayerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid usa_player_id",
			})
		}
		europePlayerID, err := uuid.Parse(req.EuropePlayerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid europe_player_id",
			})
		}
		if req.HandicapStrokes < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "handicap_strokes must not be negative",
			})
		}

		var higherHandicapTeam *models.Team
		if req.HigherHandicapTeam != nil {
			team := models.Team(*req.HigherHandicapTeam)
			if !team.Valid() {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "higher_handicap_team must be 'USA' or 'EUROPE'",
				})
			}
			higherHandicapTeam = &team
		}

		holes := make([]models.Hole, len(req.Holes))
		for i, h := range req.Holes {
			holes[i] = models.Hole{
				HoleNumber:  h.HoleNumber,
				StrokeIndex: h.StrokeIndex,
				Par:         h.Par,
			}
		}
		if err := scoring.ValidateHoles(holes); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		game := models.Game{
			TournamentID:       tournamentID,
			USAPlayerID:        usaPlayerID,
			USAPlayerName:      req.USAPlayerName,
			EuropePlayerID:     europePlayerID,
			EuropePlayerName:   req.EuropePlayerName,
			HandicapStrokes:    req.HandicapStrokes,
			HigherHandicapTeam: higherHandicapTeam,
			Status:             models.GameStatusNotStarted,
			Holes:              holes,
		}

		// The transaction covers the game and its holes: either the whole
		// matchup exists or none of it does.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			var tournament models.Tournament
			if err := tx.First(&tournament, "id = ?", tournamentID).Error; err != nil {
				return err
			}
			return tx.Create(&game).Error
		})
		if txErr == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create game",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(game)
	}
}

// GetGame returns a handler for GET /api/v1/games/:id, including the holes.
func GetGame(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		var game models.Game
		if err := db.Preload("Holes", func(db *gorm.DB) *gorm.DB {
			return db.Order("hole_number ASC")
		}).First(&game, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch game",
			})
		}
		return c.JSON(game)
	}
}

// RecordHoleScore returns a handler for PUT /api/v1/games/:id/holes/:holeNumber.
//
// Recording the first score on a fresh game implicitly starts it. Scores on a
// completed game are locked — the game must be explicitly reverted to
// in_progress before a correction. Completion itself is never implicit; it
// requires the explicit status transition once every hole is scored.
func RecordHoleScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}
		holeNumber, err := c.ParamsInt("holeNumber")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid hole number",
			})
		}

		var req RecordHoleScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if (req.USAScore != nil && *req.USAScore < 1) || (req.EuropeScore != nil && *req.EuropeScore < 1) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "strokes must be at least 1",
			})
		}

		var game models.Game
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&game, "id = ?", gameID).Error; err != nil {
				return err
			}
			if game.IsComplete {
				return errGameLocked
			}

			var hole models.Hole
			if err := tx.Where("game_id = ? AND hole_number = ?", gameID, holeNumber).
				First(&hole).Error; err != nil {
				return err
			}

			hole.USAScore = req.USAScore
			hole.EuropeScore = req.EuropeScore
			if err := tx.Save(&hole).Error; err != nil {
				return err
			}

			// First recorded score moves the game out of not_started.
			if !game.IsStarted && (req.USAScore != nil || req.EuropeScore != nil) {
				game.IsStarted = true
				game.Status = models.GameStatusInProgress
				if err := tx.Model(&game).
					Updates(map[string]any{"is_started": true, "status": game.Status}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game or hole not found",
			})
		}
		if txErr == errGameLocked {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "game is complete; revert it to in_progress before correcting scores",
			})
		}
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record score",
			})
		}

		snap, err := refreshTournament(db, game.TournamentID, time.Now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to recompute scores",
			})
		}
		broadcastSnapshot(hub, snap)
		return c.JSON(snap)
	}
}

// UpdateGameStatus returns a handler for PUT /api/v1/games/:id/status —
// the explicit admin transitions of the game lifecycle:
//
//	not_started → in_progress    start without a score on the card yet
//	in_progress → complete       all holes scored, confirm the result
//	complete    → in_progress    reopen for a correction (points leave the totals)
//	in_progress → not_started    full revert; hole scores stay recorded
//
// Anything else (skipping a state, no-op repeats) is rejected.
func UpdateGameStatus(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		var req UpdateGameStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		target := models.GameStatus(req.Status)
		switch target {
		case models.GameStatusNotStarted, models.GameStatusInProgress, models.GameStatusComplete:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "status must be 'not_started', 'in_progress', or 'complete'",
			})
		}

		var game models.Game
		if err := db.Preload("Holes").First(&game, "id = ?", gameID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "game not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch game",
			})
		}

		// The booleans are authoritative; derive the current state from them
		// rather than trusting a possibly stale status column.
		current := models.StatusFromFlags(game.IsStarted, game.IsComplete)
		if !models.CanTransition(current, target) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "illegal transition from '" + string(current) + "' to '" + string(target) + "'",
			})
		}
		if target == models.GameStatusComplete && !game.AllHolesScored() {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "cannot complete a game with unscored holes",
			})
		}

		switch target {
		case models.GameStatusNotStarted:
			game.IsStarted, game.IsComplete = false, false
		case models.GameStatusInProgress:
			game.IsStarted, game.IsComplete = true, false
		case models.GameStatusComplete:
			game.IsStarted, game.IsComplete = true, true
		}
		game.Status = target

		if err := db.Model(&game).Updates(map[string]any{
			"is_started":  game.IsStarted,
			"is_complete": game.IsComplete,
			"status":      game.Status,
		}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update status",
			})
		}

		// Recompute the tournament so a revert pulls the game's points back
		// out of the totals immediately.
		snap, err := refreshTournament(db, game.TournamentID, time.Now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to recompute scores",
			})
		}
		broadcastSnapshot(hub, snap)
		return c.JSON(snap)
	}
}
