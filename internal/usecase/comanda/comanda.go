package comanda

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domaincaixa "github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
	ucaixa "github.com/BruksfildServices01/salon-scheduler/internal/usecase/caixa"
)

type Deps struct {
	Repo    domain.Repository
	Audit   ucaixa.Auditor
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) dispatch(ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
}

// ======================================================
// CREATE
// ======================================================

type ItemInput struct {
	ServiceID   *uint
	Description string
	Quantity    int
	// UnitPrice nil usa o preço atual do serviço.
	UnitPrice *decimal.Decimal
}

type CreateInput struct {
	ClientID      uint
	AppointmentID *uint
	Items         []ItemInput
}

type CreateComanda struct {
	Deps
}

func NewCreateComanda(deps Deps) *CreateComanda {
	return &CreateComanda{Deps: deps}
}

func (uc *CreateComanda) Execute(
	ctx context.Context,
	sess auth.Session,
	in CreateInput,
) (*models.Comanda, error) {

	var c *models.Comanda

	err := uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		ok, err := tx.ClientExists(ctx, sess.SalonID, in.ClientID)
		if err != nil {
			return httperr.Store("client exists", err)
		}
		if !ok {
			return httperr.ErrBusinessf(httperr.CodeNotFound, "client not found")
		}

		if in.AppointmentID != nil {
			ok, err := tx.AppointmentExists(ctx, sess.SalonID, *in.AppointmentID)
			if err != nil {
				return httperr.Store("appointment exists", err)
			}
			if !ok {
				return httperr.ErrBusinessf(httperr.CodeNotFound, "appointment not found")
			}
		}

		items, err := uc.resolveItems(ctx, tx, sess.SalonID, in.Items)
		if err != nil {
			return err
		}
		if err := domain.ValidateItems(items); err != nil {
			return err
		}

		c = &models.Comanda{
			SalonID:       sess.SalonID,
			ClientID:      in.ClientID,
			AppointmentID: in.AppointmentID,
			Status:        string(domain.StatusOpen),
			Total:         domain.Total(items),
			Items:         items,
		}
		if err := tx.CreateComanda(ctx, c); err != nil {
			return httperr.Store("create comanda", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(audit.Event{
		SalonID:  sess.SalonID,
		UserID:   uidPtr(sess.UserID),
		Action:   audit.ActionComandaCreated,
		Entity:   "comanda",
		EntityID: strconv.FormatUint(uint64(c.ID), 10),
		Metadata: map[string]string{"total": c.Total.StringFixed(2)},
	})

	return c, nil
}

func (uc *CreateComanda) resolveItems(
	ctx context.Context,
	tx domain.Repository,
	salonID uint,
	in []ItemInput,
) ([]models.ComandaItem, error) {

	items := make([]models.ComandaItem, 0, len(in))
	for _, it := range in {
		item := models.ComandaItem{
			ServiceID:   it.ServiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
		}
		if it.UnitPrice != nil {
			item.UnitPrice = *it.UnitPrice
		}

		if it.ServiceID != nil {
			svc, err := tx.GetService(ctx, salonID, *it.ServiceID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "service %d not found", *it.ServiceID)
				}
				return nil, httperr.Store("get service", err)
			}
			if item.Description == "" {
				item.Description = svc.Name
			}
			if it.UnitPrice == nil {
				item.UnitPrice = svc.Price
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// ======================================================
// PAY
// ======================================================

type PayResult struct {
	Comanda  models.Comanda      `json:"comanda"`
	Movement models.CashMovement `json:"movement"`
	Balance  decimal.Decimal     `json:"computed_balance"`
}

// PayComanda quita a comanda lançando uma ENTRADA no caixa aberto, na
// mesma transação.
type PayComanda struct {
	Deps
}

func NewPayComanda(deps Deps) *PayComanda {
	return &PayComanda{Deps: deps}
}

func (uc *PayComanda) Execute(
	ctx context.Context,
	sess auth.Session,
	comandaID uint,
) (*PayResult, error) {

	var out PayResult

	err := uc.Repo.Atomic(ctx, func(tx domain.Repository) error {
		c, err := tx.GetComanda(ctx, sess.SalonID, comandaID, true)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return httperr.ErrBusinessf(httperr.CodeNotFound, "comanda not found")
			}
			return httperr.Store("get comanda", err)
		}
		if domain.Status(c.Status) != domain.StatusOpen {
			return httperr.ErrBusinessf(httperr.CodeInvalidTransition, "comanda %d is %s", c.ID, c.Status)
		}

		cx := tx.Caixa()
		open, err := cx.FindOpen(ctx, sess.SalonID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return httperr.ErrBusinessf(httperr.CodeSessionNotOpen, "no open cash session")
			}
			return httperr.Store("find open session", err)
		}

		id := c.ID
		mv := &models.CashMovement{
			ComandaID:   &id,
			Type:        string(domaincaixa.MovementEntrada),
			Amount:      c.Total,
			Description: fmt.Sprintf("Comanda #%d", c.ID),
			CreatedBy:   sess.UserID,
			CreatedAt:   uc.now(),
		}

		s, err := ucaixa.AppendMovement(ctx, cx, sess.SalonID, open.ID, mv)
		if err != nil {
			return err
		}

		if err := domain.MarkPaid(c, mv.ID, uc.now()); err != nil {
			return err
		}
		if err := tx.UpdateComanda(ctx, c); err != nil {
			return httperr.Store("update comanda", err)
		}

		out = PayResult{Comanda: *c, Movement: *mv, Balance: s.ComputedBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Metrics.CashMovement(out.Movement.Type)
	uc.dispatch(audit.Event{
		SalonID:  sess.SalonID,
		UserID:   uidPtr(sess.UserID),
		Action:   audit.ActionComandaPaid,
		Entity:   "comanda",
		EntityID: strconv.FormatUint(uint64(out.Comanda.ID), 10),
		Metadata: map[string]string{
			"movement_id": out.Movement.ID.String(),
			"amount":      out.Movement.Amount.StringFixed(2),
		},
	})

	return &out, nil
}

func uidPtr(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
