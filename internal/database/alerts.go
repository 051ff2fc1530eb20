package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"price-tracker-bot/internal/types"
)

// InsertAlert saves an alert to the database
func InsertAlert(a types.Alert) (int64, error) {
	query := `
	INSERT INTO alerts (title, url, image_url, price, target_price, user_email)
	VALUES (?, ?, ?, ?, ?, ?);`

	res, err := DB.Exec(query, a.Title, a.URL, a.ImageURL, a.Price, a.TargetPrice, a.UserEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to insert alert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted alert id: %w", err)
	}

	log.Debugf("alert inserted: id=%d url=%s target=%.2f email=%s", id, a.URL, a.TargetPrice, a.UserEmail)
	return id, nil
}

// GetAllAlerts fetches all alerts from the database
func GetAllAlerts() ([]types.Alert, error) {
	query := `SELECT id, title, url, image_url, price, target_price, user_email, created_at FROM alerts;`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var alert types.Alert
		if err := rows.Scan(&alert.ID, &alert.Title, &alert.URL, &alert.ImageURL, &alert.Price, &alert.TargetPrice, &alert.UserEmail, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// GetAlertsByEmail fetches all alerts owned by a notification address
func GetAlertsByEmail(email string) ([]types.Alert, error) {
	query := `SELECT id, title, url, image_url, price, target_price, user_email, created_at FROM alerts WHERE user_email = ?;`

	rows, err := DB.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts for %s: %w", email, err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var alert types.Alert
		if err := rows.Scan(&alert.ID, &alert.Title, &alert.URL, &alert.ImageURL, &alert.Price, &alert.TargetPrice, &alert.UserEmail, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// DeleteAlert removes a fired alert from the database. Deleting an id
// that is already gone is a no-op, not an error.
func DeleteAlert(alertID int64) error {
	query := `DELETE FROM alerts WHERE id = ?;`
	_, err := DB.Exec(query, alertID)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}

// UpdateAlertPrice refreshes the informational last-known price after a
// no-fire evaluation.
func UpdateAlertPrice(alertID int64, price float64) error {
	query := `UPDATE alerts SET price = ? WHERE id = ?;`
	_, err := DB.Exec(query, price, alertID)
	if err != nil {
		return fmt.Errorf("failed to update alert price: %w", err)
	}
	return nil
}
