package store

import (
	"context"

	"rfid-inventory-api/internal/models"
)

// ListGoals fetches the per-category sales goals consumed by the goals
// cache.
func (s *Store) ListGoals(ctx context.Context) ([]models.ResaleGoal, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT category, monthly_goal, updated_at
		FROM resale_goals
		ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.ResaleGoal{}
	for rows.Next() {
		var g models.ResaleGoal
		if err := rows.Scan(&g.Category, &g.Monthly, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
