package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"opsdash/internal/assignment"
	"opsdash/internal/models"
	"opsdash/internal/workflow"
)

func humanizeValidationErrors(errs validator.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		if fe.Param() != "" {
			fmt.Fprintf(&b, "%s: %s=%s; ", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			fmt.Fprintf(&b, "%s: %s; ", fe.Namespace(), fe.Tag())
		}
	}
	s := b.String()
	if len(s) > 2 {
		s = s[:len(s)-2]
	}
	return s
}

// LoadSession returns the live session for an order, building it on
// first entry. The four upstream reads (order detail, drivers present,
// airports, assignment record) run concurrently; each failure is logged
// and replaced with empty data, so stage entry never blocks on a bad
// read.
func (s *Service) LoadSession(ctx context.Context, oid string) (*assignment.Session, error) {
	if sess, err := s.GetSession(oid); err == nil {
		return sess, nil
	}

	// one build at a time; a concurrent load that lost the race above
	// picks up the winner's session here instead of rebuilding over it
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if sess, err := s.GetSession(oid); err == nil {
		return sess, nil
	}

	var (
		wg       sync.WaitGroup
		order    models.Order
		drivers  []models.Driver
		airports []models.Airport
		rec      models.OrderAssignment
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		o, err := s.upstream.OrderDetail(ctx, oid)
		if err != nil {
			logrus.WithError(err).WithField("oid", oid).Warn("order detail read failed")
			return
		}
		order = o
	}()
	go func() {
		defer wg.Done()
		d, err := s.upstream.PresentDrivers(ctx)
		if err != nil {
			logrus.WithError(err).Warn("present drivers read failed")
			return
		}
		drivers = d
	}()
	go func() {
		defer wg.Done()
		a, err := s.upstream.Airports(ctx)
		if err != nil {
			logrus.WithError(err).Warn("airports read failed")
			return
		}
		airports = a
	}()
	go func() {
		defer wg.Done()
		r, err := s.AssignmentStore.Get(oid)
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				logrus.WithError(err).WithField("oid", oid).Warn("assignment record read failed")
			}
			return
		}
		rec = r
	}()
	wg.Wait()

	if order.Oid == "" {
		order.Oid = oid
	}

	stage := workflow.Stage(rec.CurrentStage)
	if !stage.Valid() {
		stage = workflow.StageDelivery
	}

	rc := assignment.Reconciler{PackagingWeightPerBox: s.weightPerBox}
	rows := rc.Rows(order, rec.Blob())

	sess := assignment.NewSession(order, drivers, airports, stage,
		assignment.NewStore(rows, assignment.NewResolver(drivers, airports)))
	s.PutSession(oid, sess)
	return sess, nil
}

// session fetches the cached session or reports that the stage was
// never loaded (or already evicted).
func (s *Service) session(oid string) (*assignment.Session, error) {
	sess, err := s.GetSession(oid)
	if err != nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

func (s *Service) AddSubRange(oid, oiid string) (models.AssignmentRow, error) {
	sess, err := s.session(oid)
	if err != nil {
		return models.AssignmentRow{}, err
	}
	return sess.Store.AddSubRange(oiid)
}

func (s *Service) RemoveSubRange(oid, rowId string) error {
	sess, err := s.session(oid)
	if err != nil {
		return err
	}
	return sess.Store.RemoveSubRange(rowId)
}

func (s *Service) SetCTRange(oid, rowId, ct string) (models.AssignmentRow, error) {
	return s.mutateRow(oid, rowId, func(st *assignment.Store) error {
		return st.SetCTRange(rowId, ct)
	})
}

func (s *Service) SetDriver(oid, rowId, driverId string) (models.AssignmentRow, error) {
	return s.mutateRow(oid, rowId, func(st *assignment.Store) error {
		return st.SetDriver(rowId, driverId)
	})
}

func (s *Service) SetAirport(oid, rowId, name string) (models.AssignmentRow, error) {
	return s.mutateRow(oid, rowId, func(st *assignment.Store) error {
		return st.SetAirport(rowId, name)
	})
}

func (s *Service) SetStatus(oid, rowId string, status models.RowStatus) (models.AssignmentRow, error) {
	return s.mutateRow(oid, rowId, func(st *assignment.Store) error {
		return st.SetStatus(rowId, status)
	})
}

func (s *Service) mutateRow(oid, rowId string, fn func(*assignment.Store) error) (models.AssignmentRow, error) {
	sess, err := s.session(oid)
	if err != nil {
		return models.AssignmentRow{}, err
	}
	if err := fn(sess.Store); err != nil {
		return models.AssignmentRow{}, err
	}
	row, ok := sess.Store.Row(rowId)
	if !ok {
		return models.AssignmentRow{}, assignment.ErrUnknownRow
	}
	return row, nil
}

func (s *Service) Summary(oid string) (models.Summary, error) {
	sess, err := s.session(oid)
	if err != nil {
		return models.Summary{}, err
	}
	return sess.Summary(), nil
}

// Submit persists the complete stage-3 payload (a later submit fully
// replaces an earlier one), advances the workflow to pricing and emits
// the stage event. A persistence failure leaves the session untouched
// and editable for retry.
func (s *Service) Submit(ctx context.Context, oid string) (models.Stage3Payload, error) {
	sess, err := s.session(oid)
	if err != nil {
		return models.Stage3Payload{}, err
	}
	// resubmission from pricing is allowed and overwrites; everything
	// else must be the single forward step delivery -> pricing
	if stage := sess.Stage(); stage != workflow.StagePricing {
		if aerr := stage.Advance(workflow.StagePricing); aerr != nil {
			return models.Stage3Payload{}, fmt.Errorf("%w: %v", ErrStageOrder, aerr)
		}
	}

	// validate and persist one snapshot so a concurrent edit cannot
	// slip between the two
	rows := sess.Store.Rows()
	for _, row := range rows {
		if err := s.v.Struct(row); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				return models.Stage3Payload{}, fmt.Errorf("%w: %s", ErrValidation, humanizeValidationErrors(verrs))
			}
			return models.Stage3Payload{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	payload := assignment.BuildSubmission(sess.Order.CustomerName, rows)
	data, err := json.Marshal(payload)
	if err != nil {
		return models.Stage3Payload{}, fmt.Errorf("encode stage-3 payload: %w", err)
	}

	if err := s.SaveStage3(oid, string(data), string(workflow.StagePricing)); err != nil {
		return models.Stage3Payload{}, fmt.Errorf("persist stage-3 payload: %w", err)
	}

	sess.SetStage(workflow.StagePricing)
	s.PutSession(oid, sess)

	if s.publisher != nil {
		event := models.StageEvent{
			Oid:           oid,
			Stage:         string(workflow.StagePricing),
			TotalPackages: payload.SummaryData.TotalPackages,
			TotalWeight:   payload.SummaryData.TotalWeight,
			At:            time.Now().UTC(),
		}
		if err := s.publisher.PublishStageAdvanced(ctx, event); err != nil {
			logrus.WithError(err).WithField("oid", oid).Error("stage event publish failed")
		}
	}

	return payload, nil
}

// InvalidateSession drops the live session so the next load
// re-reconciles from storage. Used when upstream stage data changes.
func (s *Service) InvalidateSession(oid string) {
	s.DeleteSession(oid)
}

// HandleStageEvent consumes workflow events from the bus. A change in
// an upstream stage (collection or packaging) invalidates the cached
// session for that order.
func (s *Service) HandleStageEvent(ctx context.Context, payload []byte) error {
	var ev models.StageEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := s.v.Struct(ev); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch workflow.Stage(ev.Stage) {
	case workflow.StageCollection, workflow.StagePackaging:
		s.InvalidateSession(ev.Oid)
		logrus.WithField("oid", ev.Oid).WithField("stage", ev.Stage).
			Info("session invalidated by upstream stage change")
	}
	return nil
}
