// Package converters переводит сущности в DTO из internal/generated/dto и обратно.
package converters

import (
	"github.com/AlekSi/pointer"
	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/generated/dto"
)

func ToContact(c *dto.Contact) entities.Contact {
	if c == nil {
		return entities.Contact{}
	}
	return entities.Contact{
		Name:     c.Name,
		Phone:    pointer.Get(c.Phone),
		Email:    pointer.Get(c.Email),
		Address:  pointer.Get(c.Address),
		PostCode: pointer.Get(c.PostCode),
		City:     pointer.Get(c.City),
	}
}

// ToOrb в orb долгота идёт первой.
func ToOrb(p dto.Point) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

func ToParcelCreate(req dto.ParcelCreate) entities.ParcelCreate {
	create := entities.ParcelCreate{
		IdempotencyKey:   req.IdempotencyKey,
		Weight:           req.Weight,
		Width:            req.Width,
		Height:           req.Height,
		Depth:            req.Depth,
		Mass:             req.Mass,
		Description:      req.Description,
		SenderID:         req.SenderID,
		Sender:           ToContact(req.Sender),
		RecipientID:      req.RecipientID,
		Recipient:        ToContact(req.Recipient),
		SelectedLockerID: req.LockerID,
	}
	if req.SenderPoint != nil {
		point := ToOrb(*req.SenderPoint)
		create.SenderPoint = &point
	}
	return create
}

// FromParcel коды в ответ не попадают, их добавляет вызывающий.
func FromParcel(p *entities.Parcel) dto.Parcel {
	return dto.Parcel{
		ID:               p.ID,
		Status:           p.Status.String(),
		Weight:           p.Weight,
		Width:            p.Width,
		Height:           p.Height,
		Depth:            p.Depth,
		Mass:             p.Mass,
		Description:      p.Description,
		SenderID:         p.SenderID,
		RecipientID:      p.RecipientID,
		DriverID:         p.DriverID,
		SelectedLockerID: p.SelectedLockerID,
		DeliveryLockerID: p.DeliveryLockerID,
		CabinetID:        p.CabinetID,
		CreatedAt:        p.CreatedAt,
		StatusUpdatedAt:  p.StatusUpdatedAt,
		Version:          p.Version,
	}
}

// FromCode nil для невыданного или уже погашенного кода.
func FromCode(c entities.TransactionCode) *dto.Code {
	if !c.Issued() || !c.Active {
		return nil
	}
	return &dto.Code{
		Code:       c.Value,
		ValidUntil: c.ValidUntil,
	}
}

// FromParcelView кодов в карточке посылки нет.
func FromParcelView(v *entities.ParcelView) dto.ParcelView {
	p := FromParcel(&v.Parcel)
	view := dto.ParcelView{
		ID:               p.ID,
		Status:           p.Status,
		Weight:           p.Weight,
		Width:            p.Width,
		Height:           p.Height,
		Depth:            p.Depth,
		Mass:             p.Mass,
		Description:      p.Description,
		SenderID:         p.SenderID,
		RecipientID:      p.RecipientID,
		DriverID:         p.DriverID,
		SelectedLockerID: p.SelectedLockerID,
		DeliveryLockerID: p.DeliveryLockerID,
		CabinetID:        p.CabinetID,
		CreatedAt:        p.CreatedAt,
		StatusUpdatedAt:  p.StatusUpdatedAt,
		Version:          p.Version,
		SenderName:       v.SenderName,
		RecipientName:    v.RecipientName,
	}
	if v.Locker != nil {
		locker := FromLocker(*v.Locker)
		view.Locker = &locker
	}
	return view
}

func fromPoint(p orb.Point) dto.Point {
	return dto.Point{
		Lat: p.Lat(),
		Lon: p.Lon(),
	}
}

func FromLocker(l entities.Locker) dto.Locker {
	return dto.Locker{
		ID:       l.ID,
		Name:     l.Name,
		City:     l.City,
		Location: fromPoint(l.Location),
	}
}

func FromLockerDistances(list []entities.LockerDistance) []dto.LockerDistance {
	res := make([]dto.LockerDistance, 0, len(list))
	for _, d := range list {
		res = append(res, dto.LockerDistance{
			ID:             d.Locker.ID,
			Name:           d.Locker.Name,
			City:           d.Locker.City,
			Location:       fromPoint(d.Locker.Location),
			DistanceMeters: d.Distance,
		})
	}
	return res
}

func FromOccupancy(o entities.LockerOccupancy) dto.LockerOccupancy {
	return dto.LockerOccupancy{
		LockerID: o.LockerID,
		Free:     o.Free,
		Occupied: o.Occupied,
		Total:    o.Total(),
	}
}

func FromAssignmentResult(r entities.AssignmentResult) dto.AssignmentResult {
	return dto.AssignmentResult{
		Assigned:  r.Assigned,
		Failed:    r.Failed,
		Skipped:   r.Skipped,
		Unmatched: r.Unmatched,
		Passes:    r.Passes,
		Coalesced: r.Coalesced,
	}
}
