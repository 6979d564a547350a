// This file handles the /api/v1/tournaments routes — listing, creating,
// activating, and deleting tournaments, plus the leaderboard and progress
// read models.
//
// Each exported function follows the "handler factory" pattern: it takes a
// *gorm.DB (and where needed the websocket Hub) and returns a fiber.Handler.
// This lets us inject dependencies without using global variables.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/12ian34/ruffryder-api/internal/models"
)

// TournamentResponse is what we send back for tournament list/detail calls.
// We use a dedicated response struct (instead of the raw GORM model) so we
// control exactly what is serialized.
type TournamentResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Year           int               `json:"year"`
	UseHandicaps   bool              `json:"use_handicaps"`
	TeamConfig     string            `json:"team_config"`
	IsActive       bool              `json:"is_active"`
	TotalScore     models.GamePoints `json:"total_score"`
	ProjectedScore models.GamePoints `json:"projected_score"`
	GameCount      int64             `json:"game_count"`
	CreatedAt      string            `json:"created_at"`
}

// CreateTournamentRequest is the JSON body we expect on POST /api/v1/tournaments.
type CreateTournamentRequest struct {
	Name         string `json:"name"`
	Year         int    `json:"year"`
	UseHandicaps bool   `json:"use_handicaps"`
	TeamConfig   string `json:"team_config"` // defaults to USA_VS_EUROPE
}

func tournamentResponse(t *models.Tournament, gameCount int64) TournamentResponse {
	return TournamentResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		Year:           t.Year,
		UseHandicaps:   t.UseHandicaps,
		TeamConfig:     string(t.TeamConfig),
		IsActive:       t.IsActive,
		TotalScore:     t.TotalScore,
		ProjectedScore: t.ProjectedScore,
		GameCount:      gameCount,
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetTournaments returns a handler for GET /api/v1/tournaments.
// Optional query param: ?active=true to return only the active tournament.
func GetTournaments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tournaments []models.Tournament
		query := db.Order("created_at DESC")
		if c.Query("active") == "true" {
			query = query.Where("is_active = ?", true)
		}
		if err := query.Find(&tournaments).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournaments",
			})
		}

		response := make([]TournamentResponse, 0, len(tournaments))
		for i := range tournaments {
			var gameCount int64
			db.Model(&models.Game{}).
				Where("tournament_id = ?", tournaments[i].ID).
				Count(&gameCount)
			response = append(response, tournamentResponse(&tournaments[i], gameCount))
		}
		return c.JSON(response)
	}
}

// CreateTournament returns a handler for POST /api/v1/tournaments.
// New tournaments start inactive with zeroed scores; activate is a separate,
// explicit call because at most one tournament may be active at a time.
func CreateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateTournamentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}

		teamConfig := models.TeamConfig(req.TeamConfig)
		if req.TeamConfig == "" {
			teamConfig = models.TeamConfigUSAvsEurope
		}
		if !teamConfig.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "team_config must be 'USA_VS_EUROPE', 'USA_VS_USA', or 'EUROPE_VS_EUROPE'",
			})
		}

		tournament := models.Tournament{
			Name:         req.Name,
			Year:         req.Year,
			UseHandicaps: req.UseHandicaps,
			TeamConfig:   teamConfig,
		}
		if err := db.Create(&tournament).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create tournament",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(tournamentResponse(&tournament, 0))
	}
}

// ActivateTournament returns a handler for POST /api/v1/tournaments/:id/activate.
// It enforces the at-most-one-active invariant by deactivating every other
// tournament in the same transaction.
func ActivateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var tournament models.Tournament
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&tournament, "id = ?", id).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Tournament{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
			tournament.IsActive = true
			return tx.Model(&tournament).Update("is_active", true).Error
		})
		if txErr == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to activate tournament",
			})
		}

		var gameCount int64
		db.Model(&models.Game{}).Where("tournament_id = ?", id).Count(&gameCount)
		return c.JSON(tournamentResponse(&tournament, gameCount))
	}
}

// DeleteTournament returns a handler for DELETE /api/v1/tournaments/:id.
// The database cascades the delete to the tournament's games, their holes,
// and the progress series (see the FK constraints in the migration).
func DeleteTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		result := db.Delete(&models.Tournament{}, "id = ?", id)
		if result.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete tournament",
			})
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetLeaderboard returns a handler for GET /api/v1/tournaments/:id/leaderboard.
// It recomputes the snapshot from the raw hole data on every read — the cached
// aggregate columns are a write-side convenience, never a read-side source of
// truth.
func GetLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		snap, err := loadSnapshot(db, id)
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute leaderboard",
			})
		}
		return c.JSON(snap)
	}
}

// GetProgress returns a handler for GET /api/v1/tournaments/:id/progress.
// The series comes back sorted by timestamp, ready for time-bucketed chart
// rendering on the client.
func GetProgress(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var entries []models.ProgressEntry
		if err := db.Where("tournament_id = ?", id).
			Order("timestamp ASC").
			Find(&entries).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch progress",
			})
		}
		return c.JSON(entries)
	}
}
