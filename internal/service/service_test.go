package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	gorm "github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"

	"opsdash/internal/assignment"
	"opsdash/internal/models"
	"opsdash/internal/repository"
	"opsdash/internal/repository/cache"
	svc "opsdash/internal/service"
	"opsdash/internal/workflow"
)

type storeStub struct {
	rec     models.OrderAssignment
	getErr  error
	saveErr error

	savedOid   string
	savedData  string
	savedStage string
}

func (p *storeStub) Get(oid string) (models.OrderAssignment, error) {
	return p.rec, p.getErr
}

func (p *storeStub) SaveStage3(oid, data, stage string) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.savedOid, p.savedData, p.savedStage = oid, data, stage
	return nil
}

type upstreamStub struct {
	order      models.Order
	orderErr   error
	drivers    []models.Driver
	driversErr error
	airports   []models.Airport
}

func (u *upstreamStub) OrderDetail(ctx context.Context, oid string) (models.Order, error) {
	return u.order, u.orderErr
}
func (u *upstreamStub) PresentDrivers(ctx context.Context) ([]models.Driver, error) {
	return u.drivers, u.driversErr
}
func (u *upstreamStub) Airports(ctx context.Context) ([]models.Airport, error) {
	return u.airports, nil
}

type pubStub struct {
	events []models.StageEvent
	err    error
}

func (p *pubStub) PublishStageAdvanced(ctx context.Context, ev models.StageEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func testUpstream() *upstreamStub {
	return &upstreamStub{
		order: models.Order{
			Oid:          "ORD1",
			CustomerName: "Acme99",
			Items: []models.OrderItem{
				{Oiid: "OI1", ProductName: "Mango", NetWeight: 10, NumBoxes: "10 boxes"},
				{Oiid: "OI2", ProductName: "Banana", NetWeight: 5, NumBoxes: "5 bags"},
			},
		},
		drivers: []models.Driver{
			{Did: "d1", DriverId: "DRV-01", DriverName: "Kumar", VehicleNumber: "TN09AB1234"},
		},
		airports: []models.Airport{
			{Aid: "a1", Name: "Chennai", City: "Chennai"},
			{Aid: "a2", Name: "Delhi", City: "New Delhi"},
		},
	}
}

func newService(store *storeStub, up *upstreamStub, pub *pubStub) *svc.Service {
	repo := &repository.Repository{
		AssignmentStore: store,
		SessionCache:    cache.NewSessionCache(cache.NewCache()),
	}
	return svc.NewService(repo, up, pub, 0.5)
}

func TestLoadSession_SynthesizesRows(t *testing.T) {
	store := &storeStub{getErr: gorm.ErrRecordNotFound}
	s := newService(store, testUpstream(), &pubStub{})

	sess, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)

	rows := sess.Store.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, "OI1#0", rows[0].Id)
	require.Equal(t, workflow.StageDelivery, sess.Stage())

	// second load returns the cached session, mutations included
	_, err = s.AddSubRange("ORD1", "OI1")
	require.NoError(t, err)
	again, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Len(t, again.Store.Rows(), 3)
}

func TestLoadSession_ReloadsSavedStage3(t *testing.T) {
	saved, _ := json.Marshal(models.Stage3Payload{Products: []models.AssignmentRow{
		{Id: "OI1#0", Oiid: "OI1", Product: "Mango", TotalBoxes: 10, CtRange: "1-4", PackageCount: 4},
	}})
	store := &storeStub{rec: models.OrderAssignment{
		Oid:          "ORD1",
		CurrentStage: string(workflow.StagePricing),
		Stage3Data:   string(saved),
	}}
	s := newService(store, testUpstream(), &pubStub{})

	sess, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	rows := sess.Store.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, "1-4", rows[0].CtRange)
	require.Equal(t, workflow.StagePricing, sess.Stage())
}

func TestLoadSession_UpstreamFailuresDoNotBlock(t *testing.T) {
	up := testUpstream()
	up.orderErr = fmt.Errorf("order service down")
	up.driversErr = fmt.Errorf("roster down")
	store := &storeStub{getErr: gorm.ErrRecordNotFound}
	s := newService(store, up, &pubStub{})

	sess, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Equal(t, "ORD1", sess.Order.Oid)
	require.Empty(t, sess.Store.Rows())
	require.Empty(t, sess.Drivers)
	require.NotEmpty(t, sess.Airports)
}

func TestMutations_RequireSession(t *testing.T) {
	s := newService(&storeStub{getErr: gorm.ErrRecordNotFound}, testUpstream(), &pubStub{})

	_, err := s.SetCTRange("ORD1", "OI1#0", "1-3")
	require.ErrorIs(t, err, svc.ErrNoSession)
	_, err = s.Submit(context.Background(), "ORD1")
	require.ErrorIs(t, err, svc.ErrNoSession)
}

func TestSubmit_PersistsAndPublishes(t *testing.T) {
	store := &storeStub{getErr: gorm.ErrRecordNotFound}
	pub := &pubStub{}
	s := newService(store, testUpstream(), pub)

	_, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)

	_, err = s.SetCTRange("ORD1", "OI1#0", "1-10")
	require.NoError(t, err)
	_, err = s.SetDriver("ORD1", "OI1#0", "DRV-01")
	require.NoError(t, err)
	_, err = s.SetAirport("ORD1", "OI1#0", "Chennai")
	require.NoError(t, err)

	payload, err := s.Submit(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Len(t, payload.Products, 2)
	require.Equal(t, 10, payload.SummaryData.TotalPackages)
	require.Equal(t, "Acme001", payload.SummaryData.AirportGroups[0].Code)

	require.Equal(t, "ORD1", store.savedOid)
	require.Equal(t, string(workflow.StagePricing), store.savedStage)

	var persisted models.Stage3Payload
	require.NoError(t, json.Unmarshal([]byte(store.savedData), &persisted))
	require.Equal(t, payload, persisted)

	require.Len(t, pub.events, 1)
	require.Equal(t, "ORD1", pub.events[0].Oid)
	require.Equal(t, string(workflow.StagePricing), pub.events[0].Stage)

	sess, _ := s.LoadSession(context.Background(), "ORD1")
	require.Equal(t, workflow.StagePricing, sess.Stage())

	// resubmission from pricing overwrites instead of erroring
	_, err = s.Submit(context.Background(), "ORD1")
	require.NoError(t, err)
}

func TestSubmit_StageGuard(t *testing.T) {
	for _, stage := range []workflow.Stage{workflow.StageCollection, workflow.StagePackaging} {
		store := &storeStub{rec: models.OrderAssignment{
			Oid:          "ORD1",
			CurrentStage: string(stage),
		}}
		s := newService(store, testUpstream(), &pubStub{})

		_, err := s.LoadSession(context.Background(), "ORD1")
		require.NoError(t, err)
		_, err = s.Submit(context.Background(), "ORD1")
		require.ErrorIs(t, err, svc.ErrStageOrder, "submit from %s", stage)
	}
}

func TestSubmit_PersistFailureKeepsSessionEditable(t *testing.T) {
	store := &storeStub{getErr: gorm.ErrRecordNotFound, saveErr: fmt.Errorf("db down")}
	s := newService(store, testUpstream(), &pubStub{})

	_, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), "ORD1")
	require.Error(t, err)

	// session survives and can be retried
	sess, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Equal(t, workflow.StageDelivery, sess.Stage())
	_, err = s.SetCTRange("ORD1", "OI1#0", "1-3")
	require.NoError(t, err)
}

func TestSubmit_PublishFailureDoesNotFail(t *testing.T) {
	store := &storeStub{getErr: gorm.ErrRecordNotFound}
	s := newService(store, testUpstream(), &pubStub{err: fmt.Errorf("broker down")})

	_, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Equal(t, "ORD1", store.savedOid)
}

func TestHandleStageEvent_InvalidatesSession(t *testing.T) {
	store := &storeStub{getErr: gorm.ErrRecordNotFound}
	s := newService(store, testUpstream(), &pubStub{})

	_, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	_, err = s.AddSubRange("ORD1", "OI1")
	require.NoError(t, err)

	ev, _ := json.Marshal(models.StageEvent{Oid: "ORD1", Stage: string(workflow.StagePackaging)})
	require.NoError(t, s.HandleStageEvent(context.Background(), ev))

	// session was dropped; the next load re-reconciles from scratch
	sess, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Len(t, sess.Store.Rows(), 2)
}

func TestConcurrentLoads_ShareOneSession(t *testing.T) {
	store := &storeStub{getErr: gorm.ErrRecordNotFound}
	s := newService(store, testUpstream(), &pubStub{})

	sessions := make([]*assignment.Session, 20)
	errs := make([]error, len(sessions))
	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i], errs[i] = s.LoadSession(context.Background(), "ORD1")
		}(i)
	}
	wg.Wait()

	// every load got the same session; none rebuilt over another
	for i, sess := range sessions {
		require.NoError(t, errs[i])
		require.Same(t, sessions[0], sess)
	}
}

func TestConcurrentMutationsAndReads(t *testing.T) {
	store := &storeStub{getErr: gorm.ErrRecordNotFound}
	s := newService(store, testUpstream(), &pubStub{})

	_, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)

	const n = 50
	addErrs := make([]error, n)
	sumErrs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, addErrs[i] = s.AddSubRange("ORD1", "OI1")
		}(i)
		go func(i int) {
			defer wg.Done()
			_, sumErrs[i] = s.Summary("ORD1")
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		require.NoError(t, addErrs[i])
		require.NoError(t, sumErrs[i])
	}

	sess, err := s.LoadSession(context.Background(), "ORD1")
	require.NoError(t, err)
	count := 0
	seen := make(map[string]struct{})
	for _, r := range sess.Store.Rows() {
		if r.Oiid == "OI1" {
			count++
			// assignment indexes stay unique under concurrent adds
			_, dup := seen[r.Id]
			require.False(t, dup, "duplicate row id %s", r.Id)
			seen[r.Id] = struct{}{}
		}
	}
	require.Equal(t, n+1, count)
}

func TestHandleStageEvent_BadPayload(t *testing.T) {
	s := newService(&storeStub{}, testUpstream(), &pubStub{})

	err := s.HandleStageEvent(context.Background(), []byte(`{broken`))
	require.ErrorIs(t, err, svc.ErrDecode)

	err = s.HandleStageEvent(context.Background(), []byte(`{"oid":""}`))
	require.ErrorIs(t, err, svc.ErrValidation)
}
