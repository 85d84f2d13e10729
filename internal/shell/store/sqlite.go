package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gardenhq/gardenapi/internal/core/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// dateFormat is how calendar dates are stored (creation_date, comment_date).
const dateFormat = "2006-01-02"

// =============================================================================
// Executor Interface - Shared by DB and Transaction
// =============================================================================

// executor abstracts database operations that can be performed on both
// a database connection and a transaction.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
// Foreign keys are switched on in the DSN so cascade deletes fire.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Constraint Translation
// =============================================================================

// translateConstraint maps SQLite constraint failures onto the store's
// sentinel errors so callers see a stable taxonomy instead of raw
// driver messages. Returns nil when the error is not a known constraint.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.user_name"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "UNIQUE constraint failed: gardens.garden_name"):
		return ErrDuplicateGardenName
	case strings.Contains(msg, "UNIQUE constraint failed: plants.plant_name"):
		return ErrDuplicatePlantName
	case strings.Contains(msg, "UNIQUE constraint failed: garden_plants.garden_id, garden_plants.position"):
		return ErrPositionOccupied
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrForeignKey
	}
	return nil
}

// =============================================================================
// Row Types
// =============================================================================

type userRow struct {
	ID       int    `db:"id"`
	Username string `db:"user_name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	IsAdmin  bool   `db:"is_admin"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.Password,
		IsAdmin:      r.IsAdmin,
	}
}

type gardenRow struct {
	ID           int    `db:"id"`
	Name         string `db:"garden_name"`
	CreationDate string `db:"creation_date"`
	Description  string `db:"description"`
	UserID       int    `db:"user_id"`
}

func (r *gardenRow) toDomain() *domain.Garden {
	date, _ := time.Parse(dateFormat, r.CreationDate)
	return &domain.Garden{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		CreationDate: date,
		UserID:       r.UserID,
	}
}

type plantRow struct {
	ID         int    `db:"id"`
	Name       string `db:"plant_name"`
	Genus      string `db:"genus"`
	Watering   string `db:"watering"`
	GrowthRate string `db:"growth_rate"`
}

func (r *plantRow) toDomain() *domain.Plant {
	return &domain.Plant{
		ID:         r.ID,
		Name:       r.Name,
		Genus:      r.Genus,
		Watering:   domain.Watering(r.Watering),
		GrowthRate: domain.GrowthRate(r.GrowthRate),
	}
}

type gardenPlantRow struct {
	ID       int    `db:"id"`
	Color    string `db:"color"`
	Position string `db:"position"`
	Size     string `db:"size"`
	GardenID int    `db:"garden_id"`
	PlantID  int    `db:"plant_id"`
}

func (r *gardenPlantRow) toDomain() *domain.GardenPlant {
	return &domain.GardenPlant{
		ID:       r.ID,
		Color:    domain.Color(r.Color),
		Position: domain.Position(r.Position),
		Size:     domain.Size(r.Size),
		GardenID: r.GardenID,
		PlantID:  r.PlantID,
	}
}

type commentRow struct {
	ID          int    `db:"id"`
	Message     string `db:"message"`
	CommentDate string `db:"comment_date"`
	UserID      int    `db:"user_id"`
	GardenID    int    `db:"garden_id"`
}

func (r *commentRow) toDomain() *domain.Comment {
	date, _ := time.Parse(dateFormat, r.CommentDate)
	return &domain.Comment{
		ID:          r.ID,
		Message:     r.Message,
		CommentDate: date,
		UserID:      r.UserID,
		GardenID:    r.GardenID,
	}
}

// =============================================================================
// SQLiteStore - Interface Methods
// =============================================================================

func (s *SQLiteStore) CreateUser(ctx context.Context, user *domain.User) error {
	return createUser(ctx, s.db, user)
}

func (s *SQLiteStore) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return getUser(ctx, s.db, id)
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return getUserByEmail(ctx, s.db, email)
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, user *domain.User) error {
	return updateUser(ctx, s.db, user)
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, id int) error {
	return deleteUser(ctx, s.db, id)
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	return listUsers(ctx, s.db)
}

func (s *SQLiteStore) CreateGarden(ctx context.Context, garden *domain.Garden) error {
	return createGarden(ctx, s.db, garden)
}

func (s *SQLiteStore) GetGarden(ctx context.Context, id int) (*domain.Garden, error) {
	return getGarden(ctx, s.db, id)
}

func (s *SQLiteStore) UpdateGarden(ctx context.Context, garden *domain.Garden) error {
	return updateGarden(ctx, s.db, garden)
}

func (s *SQLiteStore) DeleteGarden(ctx context.Context, id int) error {
	return deleteGarden(ctx, s.db, id)
}

func (s *SQLiteStore) ListGardens(ctx context.Context) ([]domain.Garden, error) {
	return listGardens(ctx, s.db)
}

func (s *SQLiteStore) ListGardensByUser(ctx context.Context, userID int) ([]domain.Garden, error) {
	return listGardensByUser(ctx, s.db, userID)
}

func (s *SQLiteStore) CreatePlant(ctx context.Context, plant *domain.Plant) error {
	return createPlant(ctx, s.db, plant)
}

func (s *SQLiteStore) GetPlant(ctx context.Context, id int) (*domain.Plant, error) {
	return getPlant(ctx, s.db, id)
}

func (s *SQLiteStore) UpdatePlant(ctx context.Context, plant *domain.Plant) error {
	return updatePlant(ctx, s.db, plant)
}

func (s *SQLiteStore) DeletePlant(ctx context.Context, id int) error {
	return deletePlant(ctx, s.db, id)
}

func (s *SQLiteStore) ListPlants(ctx context.Context) ([]domain.Plant, error) {
	return listPlants(ctx, s.db)
}

func (s *SQLiteStore) CreateGardenPlant(ctx context.Context, gp *domain.GardenPlant) error {
	return createGardenPlant(ctx, s.db, gp)
}

func (s *SQLiteStore) GetGardenPlant(ctx context.Context, gardenID, id int) (*domain.GardenPlant, error) {
	return getGardenPlant(ctx, s.db, gardenID, id)
}

func (s *SQLiteStore) UpdateGardenPlant(ctx context.Context, gp *domain.GardenPlant) error {
	return updateGardenPlant(ctx, s.db, gp)
}

func (s *SQLiteStore) DeleteGardenPlant(ctx context.Context, gardenID, id int) error {
	return deleteGardenPlant(ctx, s.db, gardenID, id)
}

func (s *SQLiteStore) ListGardenPlants(ctx context.Context, gardenID int) ([]domain.GardenPlant, error) {
	return listGardenPlants(ctx, s.db, gardenID)
}

func (s *SQLiteStore) ListGardenPlantsByPlant(ctx context.Context, plantID int) ([]domain.GardenPlant, error) {
	return listGardenPlantsByPlant(ctx, s.db, plantID)
}

func (s *SQLiteStore) CountGardenPlantsAtPosition(ctx context.Context, gardenID int, pos domain.Position) (int, error) {
	return countGardenPlantsAtPosition(ctx, s.db, gardenID, pos)
}

func (s *SQLiteStore) CreateComment(ctx context.Context, comment *domain.Comment) error {
	return createComment(ctx, s.db, comment)
}

func (s *SQLiteStore) GetComment(ctx context.Context, gardenID, id int) (*domain.Comment, error) {
	return getComment(ctx, s.db, gardenID, id)
}

func (s *SQLiteStore) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	return updateComment(ctx, s.db, comment)
}

func (s *SQLiteStore) DeleteComment(ctx context.Context, gardenID, id int) error {
	return deleteComment(ctx, s.db, gardenID, id)
}

func (s *SQLiteStore) ListComments(ctx context.Context, gardenID int) ([]domain.Comment, error) {
	return listComments(ctx, s.db, gardenID)
}

func (s *SQLiteStore) ListCommentsByUser(ctx context.Context, userID int) ([]domain.Comment, error) {
	return listCommentsByUser(ctx, s.db, userID)
}

// =============================================================================
// Transaction Support
// =============================================================================

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewStoreError("WithTx", "", "", "failed to begin transaction", ErrTxFailed)
	}

	txS := &txSQLiteStore{tx: tx}

	if err := fn(txS); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return NewStoreError("WithTx", "", "", fmt.Sprintf("rollback failed after error: %v", err), ErrTxFailed)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		// A deferred constraint can still fire at commit; surface it with
		// the same taxonomy as the pre-checks.
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("WithTx", "", "", err.Error(), translated)
		}
		return NewStoreError("WithTx", "", "", "failed to commit transaction", ErrTxFailed)
	}

	return nil
}

// =============================================================================
// Transaction Store
// =============================================================================

// txSQLiteStore implements Store within a transaction.
type txSQLiteStore struct {
	tx *sqlx.Tx
}

func (s *txSQLiteStore) CreateUser(ctx context.Context, user *domain.User) error {
	return createUser(ctx, s.tx, user)
}

func (s *txSQLiteStore) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return getUser(ctx, s.tx, id)
}

func (s *txSQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return getUserByEmail(ctx, s.tx, email)
}

func (s *txSQLiteStore) UpdateUser(ctx context.Context, user *domain.User) error {
	return updateUser(ctx, s.tx, user)
}

func (s *txSQLiteStore) DeleteUser(ctx context.Context, id int) error {
	return deleteUser(ctx, s.tx, id)
}

func (s *txSQLiteStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	return listUsers(ctx, s.tx)
}

func (s *txSQLiteStore) CreateGarden(ctx context.Context, garden *domain.Garden) error {
	return createGarden(ctx, s.tx, garden)
}

func (s *txSQLiteStore) GetGarden(ctx context.Context, id int) (*domain.Garden, error) {
	return getGarden(ctx, s.tx, id)
}

func (s *txSQLiteStore) UpdateGarden(ctx context.Context, garden *domain.Garden) error {
	return updateGarden(ctx, s.tx, garden)
}

func (s *txSQLiteStore) DeleteGarden(ctx context.Context, id int) error {
	return deleteGarden(ctx, s.tx, id)
}

func (s *txSQLiteStore) ListGardens(ctx context.Context) ([]domain.Garden, error) {
	return listGardens(ctx, s.tx)
}

func (s *txSQLiteStore) ListGardensByUser(ctx context.Context, userID int) ([]domain.Garden, error) {
	return listGardensByUser(ctx, s.tx, userID)
}

func (s *txSQLiteStore) CreatePlant(ctx context.Context, plant *domain.Plant) error {
	return createPlant(ctx, s.tx, plant)
}

func (s *txSQLiteStore) GetPlant(ctx context.Context, id int) (*domain.Plant, error) {
	return getPlant(ctx, s.tx, id)
}

func (s *txSQLiteStore) UpdatePlant(ctx context.Context, plant *domain.Plant) error {
	return updatePlant(ctx, s.tx, plant)
}

func (s *txSQLiteStore) DeletePlant(ctx context.Context, id int) error {
	return deletePlant(ctx, s.tx, id)
}

func (s *txSQLiteStore) ListPlants(ctx context.Context) ([]domain.Plant, error) {
	return listPlants(ctx, s.tx)
}

func (s *txSQLiteStore) CreateGardenPlant(ctx context.Context, gp *domain.GardenPlant) error {
	return createGardenPlant(ctx, s.tx, gp)
}

func (s *txSQLiteStore) GetGardenPlant(ctx context.Context, gardenID, id int) (*domain.GardenPlant, error) {
	return getGardenPlant(ctx, s.tx, gardenID, id)
}

func (s *txSQLiteStore) UpdateGardenPlant(ctx context.Context, gp *domain.GardenPlant) error {
	return updateGardenPlant(ctx, s.tx, gp)
}

func (s *txSQLiteStore) DeleteGardenPlant(ctx context.Context, gardenID, id int) error {
	return deleteGardenPlant(ctx, s.tx, gardenID, id)
}

func (s *txSQLiteStore) ListGardenPlants(ctx context.Context, gardenID int) ([]domain.GardenPlant, error) {
	return listGardenPlants(ctx, s.tx, gardenID)
}

func (s *txSQLiteStore) ListGardenPlantsByPlant(ctx context.Context, plantID int) ([]domain.GardenPlant, error) {
	return listGardenPlantsByPlant(ctx, s.tx, plantID)
}

func (s *txSQLiteStore) CountGardenPlantsAtPosition(ctx context.Context, gardenID int, pos domain.Position) (int, error) {
	return countGardenPlantsAtPosition(ctx, s.tx, gardenID, pos)
}

func (s *txSQLiteStore) CreateComment(ctx context.Context, comment *domain.Comment) error {
	return createComment(ctx, s.tx, comment)
}

func (s *txSQLiteStore) GetComment(ctx context.Context, gardenID, id int) (*domain.Comment, error) {
	return getComment(ctx, s.tx, gardenID, id)
}

func (s *txSQLiteStore) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	return updateComment(ctx, s.tx, comment)
}

func (s *txSQLiteStore) DeleteComment(ctx context.Context, gardenID, id int) error {
	return deleteComment(ctx, s.tx, gardenID, id)
}

func (s *txSQLiteStore) ListComments(ctx context.Context, gardenID int) ([]domain.Comment, error) {
	return listComments(ctx, s.tx, gardenID)
}

func (s *txSQLiteStore) ListCommentsByUser(ctx context.Context, userID int) ([]domain.Comment, error) {
	return listCommentsByUser(ctx, s.tx, userID)
}

func (s *txSQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	// Already in a transaction, just run the function
	return fn(s)
}

func (s *txSQLiteStore) Close() error {
	// No-op for tx store
	return nil
}

// =============================================================================
// Shared Implementation Functions - Users
// =============================================================================

func createUser(ctx context.Context, exec executor, user *domain.User) error {
	query := `
		INSERT INTO users (user_name, email, password, is_admin)
		VALUES (:user_name, :email, :password, :is_admin)`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"user_name": user.Username,
		"email":     user.Email,
		"password":  user.PasswordHash,
		"is_admin":  user.IsAdmin,
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("CreateUser", "user", user.Username, err.Error(), translated)
		}
		return NewStoreError("CreateUser", "user", user.Username, err.Error(), err)
	}

	id, _ := result.LastInsertId()
	user.ID = int(id)
	return nil
}

func getUser(ctx context.Context, exec executor, id int) (*domain.User, error) {
	var row userRow
	err := exec.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetUser", "user", fmt.Sprint(id), "user not found", ErrNotFound)
		}
		return nil, NewStoreError("GetUser", "user", fmt.Sprint(id), err.Error(), err)
	}
	return row.toDomain(), nil
}

func getUserByEmail(ctx context.Context, exec executor, email string) (*domain.User, error) {
	var row userRow
	err := exec.GetContext(ctx, &row, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetUserByEmail", "user", email, "user not found", ErrNotFound)
		}
		return nil, NewStoreError("GetUserByEmail", "user", email, err.Error(), err)
	}
	return row.toDomain(), nil
}

func updateUser(ctx context.Context, exec executor, user *domain.User) error {
	query := `
		UPDATE users SET
			user_name = :user_name,
			email = :email,
			password = :password,
			is_admin = :is_admin
		WHERE id = :id`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"id":        user.ID,
		"user_name": user.Username,
		"email":     user.Email,
		"password":  user.PasswordHash,
		"is_admin":  user.IsAdmin,
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("UpdateUser", "user", fmt.Sprint(user.ID), err.Error(), translated)
		}
		return NewStoreError("UpdateUser", "user", fmt.Sprint(user.ID), err.Error(), err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("UpdateUser", "user", fmt.Sprint(user.ID), "user not found", ErrNotFound)
	}
	return nil
}

func deleteUser(ctx context.Context, exec executor, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteUser", "user", fmt.Sprint(id), err.Error(), err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("DeleteUser", "user", fmt.Sprint(id), "user not found", ErrNotFound)
	}
	return nil
}

func listUsers(ctx context.Context, exec executor) ([]domain.User, error) {
	var rows []userRow
	err := exec.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY id`)
	if err != nil {
		return nil, NewStoreError("ListUsers", "user", "", err.Error(), err)
	}
	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toDomain())
	}
	return users, nil
}

// =============================================================================
// Shared Implementation Functions - Gardens
// =============================================================================

func createGarden(ctx context.Context, exec executor, garden *domain.Garden) error {
	query := `
		INSERT INTO gardens (garden_name, creation_date, description, user_id)
		VALUES (:garden_name, :creation_date, :description, :user_id)`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"garden_name":   garden.Name,
		"creation_date": garden.CreationDate.Format(dateFormat),
		"description":   garden.Description,
		"user_id":       garden.UserID,
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("CreateGarden", "garden", garden.Name, err.Error(), translated)
		}
		return NewStoreError("CreateGarden", "garden", garden.Name, err.Error(), err)
	}

	id, _ := result.LastInsertId()
	garden.ID = int(id)
	return nil
}

func getGarden(ctx context.Context, exec executor, id int) (*domain.Garden, error) {
	var row gardenRow
	err := exec.GetContext(ctx, &row, `SELECT * FROM gardens WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetGarden", "garden", fmt.Sprint(id), "garden not found", ErrNotFound)
		}
		return nil, NewStoreError("GetGarden", "garden", fmt.Sprint(id), err.Error(), err)
	}
	return row.toDomain(), nil
}

func updateGarden(ctx context.Context, exec executor, garden *domain.Garden) error {
	query := `
		UPDATE gardens SET
			garden_name = :garden_name,
			description = :description
		WHERE id = :id`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"id":          garden.ID,
		"garden_name": garden.Name,
		"description": garden.Description,
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("UpdateGarden", "garden", fmt.Sprint(garden.ID), err.Error(), translated)
		}
		return NewStoreError("UpdateGarden", "garden", fmt.Sprint(garden.ID), err.Error(), err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("UpdateGarden", "garden", fmt.Sprint(garden.ID), "garden not found", ErrNotFound)
	}
	return nil
}

func deleteGarden(ctx context.Context, exec executor, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM gardens WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteGarden", "garden", fmt.Sprint(id), err.Error(), err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("DeleteGarden", "garden", fmt.Sprint(id), "garden not found", ErrNotFound)
	}
	return nil
}

func listGardens(ctx context.Context, exec executor) ([]domain.Garden, error) {
	var rows []gardenRow
	err := exec.SelectContext(ctx, &rows, `SELECT * FROM gardens ORDER BY id DESC`)
	if err != nil {
		return nil, NewStoreError("ListGardens", "garden", "", err.Error(), err)
	}
	gardens := make([]domain.Garden, 0, len(rows))
	for i := range rows {
		gardens = append(gardens, *rows[i].toDomain())
	}
	return gardens, nil
}

func listGardensByUser(ctx context.Context, exec executor, userID int) ([]domain.Garden, error) {
	var rows []gardenRow
	err := exec.SelectContext(ctx, &rows, `SELECT * FROM gardens WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, NewStoreError("ListGardensByUser", "garden", fmt.Sprint(userID), err.Error(), err)
	}
	gardens := make([]domain.Garden, 0, len(rows))
	for i := range rows {
		gardens = append(gardens, *rows[i].toDomain())
	}
	return gardens, nil
}

// =============================================================================
// Shared Implementation Functions - Plants
// =============================================================================

func createPlant(ctx context.Context, exec executor, plant *domain.Plant) error {
	query := `
		INSERT INTO plants (plant_name, genus, watering, growth_rate)
		VALUES (:plant_name, :genus, :watering, :growth_rate)`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"plant_name":  plant.Name,
		"genus":       plant.Genus,
		"watering":    string(plant.Watering),
		"growth_rate": string(plant.GrowthRate),
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("CreatePlant", "plant", plant.Name, err.Error(), translated)
		}
		return NewStoreError("CreatePlant", "plant", plant.Name, err.Error(), err)
	}

	id, _ := result.LastInsertId()
	plant.ID = int(id)
	return nil
}

func getPlant(ctx context.Context, exec executor, id int) (*domain.Plant, error) {
	var row plantRow
	err := exec.GetContext(ctx, &row, `SELECT * FROM plants WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetPlant", "plant", fmt.Sprint(id), "plant not found", ErrNotFound)
		}
		return nil, NewStoreError("GetPlant", "plant", fmt.Sprint(id), err.Error(), err)
	}
	return row.toDomain(), nil
}

func updatePlant(ctx context.Context, exec executor, plant *domain.Plant) error {
	query := `
		UPDATE plants SET
			plant_name = :plant_name,
			genus = :genus,
			watering = :watering,
			growth_rate = :growth_rate
		WHERE id = :id`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"id":          plant.ID,
		"plant_name":  plant.Name,
		"genus":       plant.Genus,
		"watering":    string(plant.Watering),
		"growth_rate": string(plant.GrowthRate),
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("UpdatePlant", "plant", fmt.Sprint(plant.ID), err.Error(), translated)
		}
		return NewStoreError("UpdatePlant", "plant", fmt.Sprint(plant.ID), err.Error(), err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("UpdatePlant", "plant", fmt.Sprint(plant.ID), "plant not found", ErrNotFound)
	}
	return nil
}

func deletePlant(ctx context.Context, exec executor, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM plants WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeletePlant", "plant", fmt.Sprint(id), err.Error(), err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("DeletePlant", "plant", fmt.Sprint(id), "plant not found", ErrNotFound)
	}
	return nil
}

func listPlants(ctx context.Context, exec executor) ([]domain.Plant, error) {
	var rows []plantRow
	err := exec.SelectContext(ctx, &rows, `SELECT * FROM plants ORDER BY id`)
	if err != nil {
		return nil, NewStoreError("ListPlants", "plant", "", err.Error(), err)
	}
	plants := make([]domain.Plant, 0, len(rows))
	for i := range rows {
		plants = append(plants, *rows[i].toDomain())
	}
	return plants, nil
}

// =============================================================================
// Shared Implementation Functions - GardenPlants
// =============================================================================

func createGardenPlant(ctx context.Context, exec executor, gp *domain.GardenPlant) error {
	query := `
		INSERT INTO garden_plants (color, position, size, garden_id, plant_id)
		VALUES (:color, :position, :size, :garden_id, :plant_id)`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"color":     string(gp.Color),
		"position":  string(gp.Position),
		"size":      string(gp.Size),
		"garden_id": gp.GardenID,
		"plant_id":  gp.PlantID,
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("CreateGardenPlant", "garden_plant", "", err.Error(), translated)
		}
		return NewStoreError("CreateGardenPlant", "garden_plant", "", err.Error(), err)
	}

	id, _ := result.LastInsertId()
	gp.ID = int(id)
	return nil
}

func getGardenPlant(ctx context.Context, exec executor, gardenID, id int) (*domain.GardenPlant, error) {
	var row gardenPlantRow
	err := exec.GetContext(ctx, &row, `SELECT * FROM garden_plants WHERE id = ? AND garden_id = ?`, id, gardenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetGardenPlant", "garden_plant", fmt.Sprint(id), "garden plant not found", ErrNotFound)
		}
		return nil, NewStoreError("GetGardenPlant", "garden_plant", fmt.Sprint(id), err.Error(), err)
	}
	return row.toDomain(), nil
}

func updateGardenPlant(ctx context.Context, exec executor, gp *domain.GardenPlant) error {
	query := `
		UPDATE garden_plants SET
			color = :color,
			position = :position,
			size = :size
		WHERE id = :id AND garden_id = :garden_id`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"id":        gp.ID,
		"garden_id": gp.GardenID,
		"color":     string(gp.Color),
		"position":  string(gp.Position),
		"size":      string(gp.Size),
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("UpdateGardenPlant", "garden_plant", fmt.Sprint(gp.ID), err.Error(), translated)
		}
		return NewStoreError("UpdateGardenPlant", "garden_plant", fmt.Sprint(gp.ID), err.Error(), err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("UpdateGardenPlant", "garden_plant", fmt.Sprint(gp.ID), "garden plant not found", ErrNotFound)
	}
	return nil
}

func deleteGardenPlant(ctx context.Context, exec executor, gardenID, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM garden_plants WHERE id = ? AND garden_id = ?`, id, gardenID)
	if err != nil {
		return NewStoreError("DeleteGardenPlant", "garden_plant", fmt.Sprint(id), err.Error(), err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("DeleteGardenPlant", "garden_plant", fmt.Sprint(id), "garden plant not found", ErrNotFound)
	}
	return nil
}

func listGardenPlants(ctx context.Context, exec executor, gardenID int) ([]domain.GardenPlant, error) {
	var rows []gardenPlantRow
	err := exec.SelectContext(ctx, &rows, `SELECT * FROM garden_plants WHERE garden_id = ? ORDER BY id`, gardenID)
	if err != nil {
		return nil, NewStoreError("ListGardenPlants", "garden_plant", fmt.Sprint(gardenID), err.Error(), err)
	}
	gps := make([]domain.GardenPlant, 0, len(rows))
	for i := range rows {
		gps = append(gps, *rows[i].toDomain())
	}
	return gps, nil
}

func listGardenPlantsByPlant(ctx context.Context, exec executor, plantID int) ([]domain.GardenPlant, error) {
	var rows []gardenPlantRow
	err := exec.SelectContext(ctx, &rows, `SELECT * FROM garden_plants WHERE plant_id = ? ORDER BY id`, plantID)
	if err != nil {
		return nil, NewStoreError("ListGardenPlantsByPlant", "garden_plant", fmt.Sprint(plantID), err.Error(), err)
	}
	gps := make([]domain.GardenPlant, 0, len(rows))
	for i := range rows {
		gps = append(gps, *rows[i].toDomain())
	}
	return gps, nil
}

func countGardenPlantsAtPosition(ctx context.Context, exec executor, gardenID int, pos domain.Position) (int, error) {
	var count int
	err := exec.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM garden_plants WHERE garden_id = ? AND position = ?`,
		gardenID, string(pos))
	if err != nil {
		return 0, NewStoreError("CountGardenPlantsAtPosition", "garden_plant", fmt.Sprint(gardenID), err.Error(), err)
	}
	return count, nil
}

// =============================================================================
// Shared Implementation Functions - Comments
// =============================================================================

func createComment(ctx context.Context, exec executor, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (message, comment_date, user_id, garden_id)
		VALUES (:message, :comment_date, :user_id, :garden_id)`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"message":      comment.Message,
		"comment_date": comment.CommentDate.Format(dateFormat),
		"user_id":      comment.UserID,
		"garden_id":    comment.GardenID,
	})
	if err != nil {
		if translated := translateConstraint(err); translated != nil {
			return NewStoreError("CreateComment", "comment", "", err.Error(), translated)
		}
		return NewStoreError("CreateComment", "comment", "", err.Error(), err)
	}

	id, _ := result.LastInsertId()
	comment.ID = int(id)
	return nil
}

func getComment(ctx context.Context, exec executor, gardenID, id int) (*domain.Comment, error) {
	var row commentRow
	err := exec.GetContext(ctx, &row, `SELECT * FROM comments WHERE id = ? AND garden_id = ?`, id, gardenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetComment", "comment", fmt.Sprint(id), "comment not found", ErrNotFound)
		}
		return nil, NewStoreError("GetComment", "comment", fmt.Sprint(id), err.Error(), err)
	}
	return row.toDomain(), nil
}

func updateComment(ctx context.Context, exec executor, comment *domain.Comment) error {
	query := `UPDATE comments SET message = :message WHERE id = :id AND garden_id = :garden_id`

	result, err := exec.NamedExecContext(ctx, query, map[string]any{
		"id":        comment.ID,
		"garden_id": comment.GardenID,
		"message":   comment.Message,
	})
	if err != nil {
		return NewStoreError("UpdateComment", "comment", fmt.Sprint(comment.ID), err.Error(), err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("UpdateComment", "comment", fmt.Sprint(comment.ID), "comment not found", ErrNotFound)
	}
	return nil
}

func deleteComment(ctx context.Context, exec executor, gardenID, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM comments WHERE id = ? AND garden_id = ?`, id, gardenID)
	if err != nil {
		return NewStoreError("DeleteComment", "comment", fmt.Sprint(id), err.Error(), err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return NewStoreError("DeleteComment", "comment", fmt.Sprint(id), "comment not found", ErrNotFound)
	}
	return nil
}

func listComments(ctx context.Context, exec executor, gardenID int) ([]domain.Comment, error) {
	var rows []commentRow
	err := exec.SelectContext(ctx, &rows,
		`SELECT * FROM comments WHERE garden_id = ? ORDER BY comment_date DESC, id DESC`, gardenID)
	if err != nil {
		return nil, NewStoreError("ListComments", "comment", fmt.Sprint(gardenID), err.Error(), err)
	}
	comments := make([]domain.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, *rows[i].toDomain())
	}
	return comments, nil
}

func listCommentsByUser(ctx context.Context, exec executor, userID int) ([]domain.Comment, error) {
	var rows []commentRow
	err := exec.SelectContext(ctx, &rows,
		`SELECT * FROM comments WHERE user_id = ? ORDER BY comment_date DESC, id DESC`, userID)
	if err != nil {
		return nil, NewStoreError("ListCommentsByUser", "comment", fmt.Sprint(userID), err.Error(), err)
	}
	comments := make([]domain.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, *rows[i].toDomain())
	}
	return comments, nil
}
