package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"collections-risk-backend/internal/models"
)

const insertBatchSize = 500

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CustomerFilter narrows QueryCustomers. Empty fields match everything.
type CustomerFilter struct {
	Status string
	Search string
}

// InsertCustomers writes the whole batch in one transaction. IDs are
// assigned here when the caller left them empty.
func (r *CustomerRepository) InsertCustomers(ctx context.Context, customers []models.Customer) (int, error) {
	if len(customers) == 0 {
		return 0, nil
	}
	for i := range customers {
		if customers[i].ID == uuid.Nil {
			customers[i].ID = uuid.New()
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(customers, insertBatchSize).Error
	})
	if err != nil {
		return 0, eris.Wrap(err, "repository: insert customers")
	}
	return len(customers), nil
}

// QueryCustomers loads an owner's portfolio ordered by risk score, highest
// first. Search matches name or email case-insensitively, or phone as a
// substring.
func (r *CustomerRepository) QueryCustomers(ctx context.Context, ownerID uuid.UUID, filter CustomerFilter) ([]models.Customer, error) {
	var customers []models.Customer

	q := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "risk_score"}, Desc: true}).
		Order("created_at ASC")

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		phone := "%" + likeEscaper.Replace(s) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\'`, like, like, phone)
	}

	if err := q.Find(&customers).Error; err != nil {
		return nil, eris.Wrap(err, "repository: query customers")
	}
	return customers, nil
}

func (r *CustomerRepository) GetCustomer(ctx context.Context, ownerID, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, eris.Wrapf(notFound(err), "repository: get customer %s", id)
	}
	return &c, nil
}

// UpdateStatuses sets new status values keyed by customer id.
func (r *CustomerRepository) UpdateStatuses(ctx context.Context, ownerID uuid.UUID, statuses map[uuid.UUID]string) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, status := range statuses {
			res := tx.Model(&models.Customer{}).
				Where("id = ? AND owner_id = ?", id, ownerID).
				Update("status", status)
			if res.Error != nil {
				return res.Error
			}
			updated += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, eris.Wrap(err, "repository: update statuses")
	}
	return updated, nil
}
