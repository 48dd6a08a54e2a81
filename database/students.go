package database

import (
	"log/slog"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// Students returns the full roster. Without a roster database the result is
// empty, not an error; the roster only enriches listings.
func (d *DB) Students() ([]models.Student, error) {
	if d == nil || d.roster == nil {
		return nil, nil
	}
	d.rmu.Lock()
	defer d.rmu.Unlock()

	rows, err := d.roster.Query("SELECT roll_no, name FROM students")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.RollNumber, &s.Name); err != nil {
			return students, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// HasRoster reports whether a roster database was configured and opened.
func (d *DB) HasRoster() bool {
	return d != nil && d.roster != nil
}

// StudentName resolves a roll number to a display name; empty when the roll
// is unknown or no roster is configured.
func (d *DB) StudentName(roll string) string {
	if d == nil || d.roster == nil {
		return ""
	}
	d.rmu.Lock()
	defer d.rmu.Unlock()

	var name string
	err := d.roster.QueryRow("SELECT name FROM students WHERE roll_no = ?", roll).Scan(&name)
	if err != nil {
		slog.Default().Debug("roster lookup", "roll", roll, "error", err)
		return ""
	}
	return name
}
