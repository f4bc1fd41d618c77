package sqlite

import "time"

func (s *Store) GetCardOrder() (map[string]int, error) {
	rows, err := s.db.Query("SELECT habit_id, position FROM card_order")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order := make(map[string]int)
	for rows.Next() {
		var id string
		var pos int
		if err := rows.Scan(&id, &pos); err != nil {
			return nil, err
		}
		order[id] = pos
	}
	return order, rows.Err()
}

// SaveCardOrder replaces the stored order with ids in sequence
func (s *Store) SaveCardOrder(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM card_order"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO card_order (habit_id, position, updated_at) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, id := range ids {
		if _, err := stmt.Exec(id, i, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) ClearCardOrder() error {
	_, err := s.db.Exec("DELETE FROM card_order")
	return err
}
