package parcel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/keymutex"
	"parcel-locker/pkg/logger"
)

// NearestLockerCandidates сколько ближайших постаматов перебирается при создании посылки.
const NearestLockerCandidates = 5

type Service struct {
	log        handlerLogger
	repository Repository
	customers  CustomerRepository
	lockers    LockerRepository
	finder     LockerFinder
	allocator  CabinetAllocator
	codes      CodeManager
	notifier   Notifier
	txManager  TxManager

	parcels *keymutex.Map[int64]
	now     func() time.Time
}

func New(
	log handlerLogger,
	repository Repository,
	customers CustomerRepository,
	lockers LockerRepository,
	finder LockerFinder,
	allocator CabinetAllocator,
	codes CodeManager,
	notifier Notifier,
	txManager TxManager,
) *Service {
	return &Service{
		log:        log.With(logger.NewField("service", "parcel")),
		repository: repository,
		customers:  customers,
		lockers:    lockers,
		finder:     finder,
		allocator:  allocator,
		codes:      codes,
		notifier:   notifier,
		txManager:  txManager,
		parcels:    keymutex.New[int64](),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create регистрирует посылку: выбирает постамат, занимает ячейку, выдаёт код
// отправителя и переводит посылку в awaiting_dropoff. Повтор запроса с тем же
// ключом идемпотентности возвращает уже созданную посылку.
func (s *Service) Create(ctx context.Context, req entities.ParcelCreate) (*entities.Parcel, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	existing, err := s.replay(ctx, req)
	if err != nil || existing != nil {
		return existing, err
	}

	var created *entities.Parcel
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		now := s.now()
		p := newParcel(req, now)

		candidates, err := s.lockerCandidates(ctx, req)
		if err != nil {
			return err
		}

		if err := s.reserveAny(ctx, p, candidates); err != nil {
			return err
		}

		if _, err := s.codes.IssueSenderCode(ctx, p, now); err != nil {
			s.compensate(ctx, p)
			return fmt.Errorf("issue sender code: %w", err)
		}

		if err := advance(p, entities.ParcelAwaitingDropoff); err != nil {
			s.compensate(ctx, p)
			return err
		}

		created, err = s.repository.Create(ctx, p)
		if err != nil {
			s.compensate(ctx, p)
			return fmt.Errorf("create parcel: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateIdempotencyKey) {
			// параллельный запрос с тем же ключом успел раньше
			return s.replay(ctx, req)
		}
		return nil, err
	}

	s.log.Info("parcel created",
		logger.NewField("parcel_id", created.ID),
		logger.NewField("locker_id", created.SelectedLockerID),
	)
	s.notify(ctx, created.ID, entities.ParcelCreated, created.CreatedAt)
	s.notify(ctx, created.ID, created.Status, created.StatusUpdatedAt)

	return created, nil
}

// DropOff отправитель кладёт посылку в ячейку, предъявив код.
func (s *Service) DropOff(ctx context.Context, parcelID int64, code string) (*entities.Parcel, error) {
	return s.transition(ctx, parcelID, func(_ context.Context, p *entities.Parcel, now time.Time) error {
		// повтор закладки сразу после неё: ответ по коду, а не по статусу
		if p.Status == entities.ParcelInLocker && p.SenderCode.UsedAt != nil {
			return s.codes.ValidateAndConsumeSenderCode(p, code, now)
		}
		if err := expect(p, entities.ParcelInLocker); err != nil {
			return err
		}
		if err := s.codes.ValidateAndConsumeSenderCode(p, code, now); err != nil {
			return err
		}
		p.Status = entities.ParcelInLocker
		return nil
	})
}

// AssignDriver закрепляет посылку за водителем. Переход и есть захват посылки:
// вторая попытка для той же посылки получит ErrInvalidStateTransition.
func (s *Service) AssignDriver(ctx context.Context, parcelID, driverID int64) (*entities.Parcel, error) {
	if driverID <= 0 {
		return nil, ErrUnknownDriverContext
	}
	return s.transition(ctx, parcelID, func(_ context.Context, p *entities.Parcel, _ time.Time) error {
		if err := expect(p, entities.ParcelAssignedToDriver); err != nil {
			return err
		}
		if p.DriverID != nil {
			return fmt.Errorf("%w: parcel already bound to driver %d", ErrInvalidStateTransition, *p.DriverID)
		}
		p.DriverID = &driverID
		p.Status = entities.ParcelAssignedToDriver
		return nil
	})
}

func (s *Service) StartTransit(ctx context.Context, parcelID, driverID int64) (*entities.Parcel, error) {
	return s.transition(ctx, parcelID, func(_ context.Context, p *entities.Parcel, _ time.Time) error {
		if err := expect(p, entities.ParcelInTransit); err != nil {
			return err
		}
		if err := expectDriver(p, driverID); err != nil {
			return err
		}
		p.Status = entities.ParcelInTransit
		return nil
	})
}

// DeliverToLocker водитель кладёт посылку в постамат назначения. Если он отличается
// от текущего, в нём занимается новая ячейка, а прежняя освобождается.
// lockerID <= 0 означает текущий постамат посылки.
func (s *Service) DeliverToLocker(ctx context.Context, parcelID, driverID, lockerID int64) (*entities.Parcel, error) {
	return s.transition(ctx, parcelID, func(ctx context.Context, p *entities.Parcel, now time.Time) error {
		if err := expect(p, entities.ParcelDeliveredToLocker); err != nil {
			return err
		}
		if err := expectDriver(p, driverID); err != nil {
			return err
		}

		target := p.CurrentLockerID()
		previousCabinet := p.CabinetID
		moved := lockerID > 0 && lockerID != target

		if moved {
			if _, err := s.lockers.GetByID(ctx, lockerID); err != nil {
				return fmt.Errorf("get delivery locker: %w", err)
			}
			if _, err := s.allocator.Reserve(ctx, lockerID, p); err != nil {
				return fmt.Errorf("reserve delivery cabinet: %w", err)
			}
			target = lockerID
		}

		if _, err := s.codes.IssueRecipientCode(ctx, p, now); err != nil {
			if moved {
				s.compensate(ctx, p)
			}
			return fmt.Errorf("issue recipient code: %w", err)
		}

		if moved && previousCabinet != nil {
			if err := s.allocator.Release(ctx, *previousCabinet); err != nil {
				s.compensate(ctx, p)
				return fmt.Errorf("release drop-off cabinet: %w", err)
			}
		}

		p.DeliveryLockerID = &target
		p.Status = entities.ParcelDeliveredToLocker
		return nil
	})
}

// PickUp получатель забирает посылку по коду, ячейка освобождается.
func (s *Service) PickUp(ctx context.Context, parcelID int64, code string) (*entities.Parcel, error) {
	return s.transition(ctx, parcelID, func(ctx context.Context, p *entities.Parcel, now time.Time) error {
		if p.Status == entities.ParcelPickedUp && p.RecipientCode.UsedAt != nil {
			return s.codes.ValidateAndConsumeRecipientCode(p, code, now)
		}
		if err := expect(p, entities.ParcelPickedUp); err != nil {
			return err
		}
		if err := s.codes.ValidateAndConsumeRecipientCode(p, code, now); err != nil {
			return err
		}
		if err := s.releaseCabinet(ctx, p); err != nil {
			return err
		}
		p.Status = entities.ParcelPickedUp
		return nil
	})
}

func (s *Service) Cancel(ctx context.Context, parcelID int64) (*entities.Parcel, error) {
	return s.transition(ctx, parcelID, func(ctx context.Context, p *entities.Parcel, _ time.Time) error {
		return s.terminate(ctx, p, entities.ParcelCancelled)
	})
}

func (s *Service) Expire(ctx context.Context, parcelID int64) (*entities.Parcel, error) {
	return s.transition(ctx, parcelID, func(ctx context.Context, p *entities.Parcel, _ time.Time) error {
		return s.terminate(ctx, p, entities.ParcelExpired)
	})
}

// ReissueRecipientCode выдаёт получателю новый код взамен неиспользованного.
// Выполняется только по запросу оператора, автоматически код не перевыпускается.
func (s *Service) ReissueRecipientCode(ctx context.Context, parcelID int64) (*entities.Parcel, error) {
	return s.transition(ctx, parcelID, func(ctx context.Context, p *entities.Parcel, now time.Time) error {
		if p.Status != entities.ParcelDeliveredToLocker {
			return fmt.Errorf("%w: reissue recipient code in %s", ErrInvalidStateTransition, p.Status)
		}
		if _, err := s.codes.IssueRecipientCode(ctx, p, now); err != nil {
			return fmt.Errorf("issue recipient code: %w", err)
		}
		return nil
	})
}

// ExpireOverdue переводит в expired посылки, которые так и не положили в ячейку
// до истечения кода отправителя. Возвращает число истёкших посылок.
func (s *Service) ExpireOverdue(ctx context.Context, limit int) (int, error) {
	ids, err := s.repository.ListExpiredAwaitingDropoff(ctx, s.now(), limit)
	if err != nil {
		return 0, fmt.Errorf("list expired parcels: %w", err)
	}

	expired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}

		_, err := s.transition(ctx, id, func(ctx context.Context, p *entities.Parcel, now time.Time) error {
			if p.Status != entities.ParcelAwaitingDropoff || now.Before(p.SenderCode.ValidUntil) {
				return errNothingToDo
			}
			return s.terminate(ctx, p, entities.ParcelExpired)
		})
		switch {
		case err == nil:
			expired++
		case errors.Is(err, errNothingToDo):
		default:
			s.log.Warn("expire parcel failed",
				logger.NewField("parcel_id", id),
				logger.NewField("error", err),
			)
		}
	}
	return expired, nil
}

func (s *Service) Get(ctx context.Context, parcelID int64) (*entities.ParcelView, error) {
	if parcelID <= 0 {
		return nil, ErrInvalidParcelID
	}

	p, err := s.repository.GetByID(ctx, parcelID)
	if err != nil {
		return nil, fmt.Errorf("get parcel: %w", err)
	}

	view := &entities.ParcelView{Parcel: *p}

	view.SenderName, err = s.partyName(ctx, p.SenderID, p.Sender)
	if err != nil {
		return nil, err
	}

	recipientID := p.RecipientID
	if !p.RecipientRegistered {
		recipientID = nil
	}
	view.RecipientName, err = s.partyName(ctx, recipientID, p.Recipient)
	if err != nil {
		return nil, err
	}

	locker, err := s.lockers.GetByID(ctx, p.CurrentLockerID())
	if err != nil {
		return nil, fmt.Errorf("get parcel locker: %w", err)
	}
	view.Locker = locker

	return view, nil
}

// GetByCabinet посылка, которая сейчас занимает ячейку.
func (s *Service) GetByCabinet(ctx context.Context, cabinetID int64) (*entities.Parcel, error) {
	p, err := s.repository.GetByCabinetID(ctx, cabinetID)
	if err != nil {
		return nil, fmt.Errorf("get parcel by cabinet: %w", err)
	}
	return p, nil
}

var errNothingToDo = errors.New("nothing to do")

type mutation func(ctx context.Context, p *entities.Parcel, now time.Time) error

// transition загружает актуальную посылку под замком посылки, применяет fn и
// сохраняет с проверкой версии. Ошибка fn оставляет посылку без изменений.
func (s *Service) transition(ctx context.Context, parcelID int64, fn mutation) (*entities.Parcel, error) {
	if parcelID <= 0 {
		return nil, ErrInvalidParcelID
	}

	unlock := s.parcels.Lock(parcelID)
	defer unlock()

	var (
		updated *entities.Parcel
		from    entities.ParcelStatus
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		p, err := s.repository.GetByID(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("get parcel: %w", err)
		}
		from = p.Status

		now := s.now()
		if err := fn(ctx, p, now); err != nil {
			return err
		}

		p.UpdatedAt = now
		if p.Status != from {
			p.StatusUpdatedAt = now
		}

		if err := s.repository.Update(ctx, p); err != nil {
			return fmt.Errorf("save parcel: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != from {
		s.log.Debug("parcel status changed",
			logger.NewField("parcel_id", updated.ID),
			logger.NewField("from", from.String()),
			logger.NewField("to", updated.Status.String()),
		)
		s.notify(ctx, updated.ID, updated.Status, updated.StatusUpdatedAt)
	}
	return updated, nil
}

func (s *Service) terminate(ctx context.Context, p *entities.Parcel, to entities.ParcelStatus) error {
	if err := expect(p, to); err != nil {
		return err
	}
	if err := s.releaseCabinet(ctx, p); err != nil {
		return err
	}
	s.codes.Deactivate(p)
	p.Status = to
	return nil
}

func (s *Service) releaseCabinet(ctx context.Context, p *entities.Parcel) error {
	if p.CabinetID == nil {
		return nil
	}
	if err := s.allocator.Release(ctx, *p.CabinetID); err != nil {
		return fmt.Errorf("release cabinet: %w", err)
	}
	p.CabinetID = nil
	return nil
}

// compensate возвращает ячейку, занятую в рамках неудавшейся операции.
func (s *Service) compensate(ctx context.Context, p *entities.Parcel) {
	if p.CabinetID == nil {
		return
	}
	if err := s.allocator.Release(ctx, *p.CabinetID); err != nil {
		s.log.Error("release cabinet after failed operation",
			logger.NewField("cabinet_id", *p.CabinetID),
			logger.NewField("error", err),
		)
	}
	p.CabinetID = nil
}

func (s *Service) replay(ctx context.Context, req entities.ParcelCreate) (*entities.Parcel, error) {
	existing, err := s.repository.GetByIdempotencyKey(ctx, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, ErrParcelNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel by idempotency key: %w", err)
	}

	if !matchesRequest(existing, req) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateIdempotencyKey, req.IdempotencyKey)
	}

	s.log.Info("parcel creation replayed",
		logger.NewField("parcel_id", existing.ID),
		logger.NewField("idempotency_key", req.IdempotencyKey),
	)
	return existing, nil
}

func (s *Service) lockerCandidates(ctx context.Context, req entities.ParcelCreate) ([]int64, error) {
	if req.SenderID != nil {
		if _, err := s.customers.GetByID(ctx, *req.SenderID); err != nil {
			return nil, fmt.Errorf("get sender: %w", err)
		}
	}
	if req.RecipientID != nil {
		if _, err := s.customers.GetByID(ctx, *req.RecipientID); err != nil {
			return nil, fmt.Errorf("get recipient: %w", err)
		}
	}

	if req.SelectedLockerID != nil {
		if _, err := s.lockers.GetByID(ctx, *req.SelectedLockerID); err != nil {
			return nil, fmt.Errorf("get selected locker: %w", err)
		}
		return []int64{*req.SelectedLockerID}, nil
	}

	point, err := s.senderPoint(ctx, req)
	if err != nil {
		return nil, err
	}

	nearest, err := s.finder.FindNearest(ctx, point, NearestLockerCandidates)
	if err != nil {
		return nil, fmt.Errorf("find nearest lockers: %w", err)
	}
	if len(nearest) == 0 {
		return nil, ErrNoLockerAvailable
	}

	ids := make([]int64, 0, len(nearest))
	for _, n := range nearest {
		ids = append(ids, n.Locker.ID)
	}
	return ids, nil
}

func (s *Service) senderPoint(ctx context.Context, req entities.ParcelCreate) (orb.Point, error) {
	if req.SenderPoint != nil {
		return *req.SenderPoint, nil
	}
	if req.SenderID != nil {
		sender, err := s.customers.GetByID(ctx, *req.SenderID)
		if err != nil {
			return orb.Point{}, fmt.Errorf("get sender: %w", err)
		}
		if sender.Location != nil {
			return *sender.Location, nil
		}
	}
	return orb.Point{}, fmt.Errorf("%w: sender point or locker", ErrMissingRequiredFields)
}

// reserveAny перебирает постаматы по порядку, пока в одном не найдётся свободная ячейка.
func (s *Service) reserveAny(ctx context.Context, p *entities.Parcel, lockerIDs []int64) error {
	for _, lockerID := range lockerIDs {
		_, err := s.allocator.Reserve(ctx, lockerID, p)
		if err == nil {
			p.SelectedLockerID = lockerID
			return nil
		}
		if !errors.Is(err, ErrNoCabinetAvailable) {
			return fmt.Errorf("reserve cabinet: %w", err)
		}
	}
	return ErrNoCabinetAvailable
}

func (s *Service) partyName(ctx context.Context, customerID *int64, contact entities.Contact) (string, error) {
	if customerID == nil {
		return contact.Name, nil
	}
	customer, err := s.customers.GetByID(ctx, *customerID)
	if err != nil {
		return "", fmt.Errorf("get customer %d: %w", *customerID, err)
	}
	return customer.DisplayName(), nil
}

func (s *Service) notify(ctx context.Context, parcelID int64, status entities.ParcelStatus, at time.Time) {
	event := entities.StatusEvent{
		ParcelID:   parcelID,
		Status:     status,
		OccurredAt: at,
	}
	// уведомление не должно ломать уже сохранённый переход
	if err := s.notifier.Notify(context.WithoutCancel(ctx), event); err != nil {
		s.log.Warn("notify status change failed",
			logger.NewField("parcel_id", parcelID),
			logger.NewField("status", status.String()),
			logger.NewField("error", err),
		)
	}
}

func expect(p *entities.Parcel, to entities.ParcelStatus) error {
	if !p.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, p.Status, to)
	}
	return nil
}

func expectDriver(p *entities.Parcel, driverID int64) error {
	if p.DriverID == nil || *p.DriverID != driverID {
		return fmt.Errorf("%w: driver %d for parcel %d", ErrUnknownDriverContext, driverID, p.ID)
	}
	return nil
}

func advance(p *entities.Parcel, to entities.ParcelStatus) error {
	if err := expect(p, to); err != nil {
		return err
	}
	p.Status = to
	return nil
}

func newParcel(req entities.ParcelCreate, now time.Time) *entities.Parcel {
	p := &entities.Parcel{
		Weight:                  req.Weight,
		Width:                   req.Width,
		Height:                  req.Height,
		Depth:                   req.Depth,
		Mass:                    req.Mass,
		Description:             req.Description,
		SenderID:                req.SenderID,
		RecipientRegistered:     req.RecipientID != nil,
		RecipientID:             req.RecipientID,
		Status:                  entities.ParcelCreated,
		CreatedAt:               now,
		UpdatedAt:               now,
		StatusUpdatedAt:         now,
		IdempotencyKey:          req.IdempotencyKey,
		IdempotencyKeyCreatedAt: now,
	}
	if req.SenderID == nil {
		p.Sender = req.Sender
	}
	if req.RecipientID == nil {
		p.Recipient = req.Recipient
	}
	return p
}
