package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"metrology/internal/core/domain/model/order"
	"metrology/internal/core/ports"
)

// Store implements ports.OrderStore on top of a PostgreSQL database. Every
// Save rewrites the whole order set in one transaction: upsert all present
// rows, prune the vanished ones, replace the roster document. That keeps
// the database an exact mirror of the in-memory state after each mutation.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewStore creates a store over an open GORM connection and migrates the
// schema.
func NewStore(db *gorm.DB, logger *slog.Logger) (*Store, error) {
	if err := db.AutoMigrate(&OrderRow{}, &RosterRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "postgres_store"),
	}, nil
}

// Load reads all order rows in their saved order and splits them into
// partitions by the status column. Rows whose payload no longer decodes are
// skipped with a log line rather than failing the whole load; the
// reconciler rewrites a clean state afterwards.
func (s *Store) Load(ctx context.Context) (ports.StoreState, error) {
	var rows []OrderRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return ports.StoreState{}, fmt.Errorf("load orders: %w", err)
	}

	var state ports.StoreState
	for _, row := range rows {
		doc, err := toDoc(row)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping undecodable order row", "id", row.ID, "error", err)
			continue
		}

		if doc.Status == order.Active {
			state.Active = append(state.Active, doc)
		} else {
			state.Archived = append(state.Archived, doc)
		}
	}

	operators, err := s.loadRoster(ctx)
	if err != nil {
		return ports.StoreState{}, err
	}
	state.Operators = operators

	return state, nil
}

// Save rewrites the whole persisted state transactionally.
func (s *Store) Save(ctx context.Context, state ports.StoreState) error {
	rows := make([]OrderRow, 0, len(state.Active)+len(state.Archived))
	ids := make([]string, 0, cap(rows))
	position := 0

	for _, doc := range append(append([]order.Doc{}, state.Active...), state.Archived...) {
		row, err := fromDoc(doc, position)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		ids = append(ids, row.ID)
		position++
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&rows).Error; err != nil {
				return fmt.Errorf("upsert orders: %w", err)
			}
		}

		prune := tx.Model(&OrderRow{})
		if len(ids) > 0 {
			prune = prune.Where("id NOT IN ?", ids)
		} else {
			prune = prune.Where("1 = 1")
		}
		if err := prune.Delete(&OrderRow{}).Error; err != nil {
			return fmt.Errorf("prune orders: %w", err)
		}

		return s.saveRoster(tx, state.Operators)
	})
}

// CountArchivedByDrawing counts archived orders with the given drawing
// number. Archived means any status other than ACTIVE.
func (s *Store) CountArchivedByDrawing(ctx context.Context, drawingNumber string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&OrderRow{}).
		Where("drawing_number = ? AND status <> ?", drawingNumber, string(order.Active)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count archived orders: %w", err)
	}

	return int(count), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) loadRoster(ctx context.Context) ([]string, error) {
	var row RosterRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", rosterRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load roster: %w", err)
	}

	var names []string
	if err = unmarshalNames(row.Names, &names); err != nil {
		s.logger.Warn("Skipping undecodable roster row", "error", err)
		return nil, nil
	}

	return names, nil
}

func (s *Store) saveRoster(tx *gorm.DB, names []string) error {
	payload, err := marshalNames(names)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	row := RosterRow{ID: rosterRowID, Names: payload}
	if err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("upsert roster: %w", err)
	}

	return nil
}
