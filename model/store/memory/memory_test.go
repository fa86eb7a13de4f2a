package memory

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"website/model/model"
	U "website/util"

	"github.com/jinzhu/gorm/dialects/postgres"
	"github.com/stretchr/testify/assert"
)

func newTestStore() (*Memory, *time.Time) {
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := New()
	m.NowFunc = func() time.Time { return clock }
	return m, &clock
}

func TestGuestbookCRUD(t *testing.T) {
	m, clock := newTestStore()

	_, errCode := m.CreateGuestbookEntry(&model.GuestbookEntry{Name: "", Message: "hi"})
	assert.Equal(t, http.StatusBadRequest, errCode)

	entry, errCode := m.CreateGuestbookEntry(&model.GuestbookEntry{Name: "Ann", Message: "hi"})
	assert.Equal(t, http.StatusCreated, errCode)
	assert.True(t, U.IsValidUUID(entry.ID))
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)

	// Returned rows are copies.
	entry.Name = "changed"
	got, errCode := m.GetGuestbookEntry(entry.ID)
	assert.Equal(t, http.StatusFound, errCode)
	assert.Equal(t, "Ann", got.Name)

	*clock = clock.Add(time.Minute)
	message := "hello"
	updated, errCode := m.UpdateGuestbookEntry(entry.ID, nil, &message)
	assert.Equal(t, http.StatusAccepted, errCode)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, "hello", updated.Message)
	assert.Equal(t, got.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, errCode = m.UpdateGuestbookEntry(entry.ID, nil, nil)
	assert.Equal(t, http.StatusBadRequest, errCode)

	deleted, errCode := m.DeleteGuestbookEntry(entry.ID)
	assert.Equal(t, http.StatusAccepted, errCode)
	assert.Equal(t, "hello", deleted.Message)

	_, errCode = m.GetGuestbookEntry(entry.ID)
	assert.Equal(t, http.StatusNotFound, errCode)
	_, errCode = m.DeleteGuestbookEntry(entry.ID)
	assert.Equal(t, http.StatusNotFound, errCode)
	_, errCode = m.UpdateGuestbookEntry(entry.ID, &message, nil)
	assert.Equal(t, http.StatusNotFound, errCode)
	_, errCode = m.GetGuestbookEntry("not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, errCode)
}

func TestTodoListPagination(t *testing.T) {
	m, clock := newTestStore()

	ids := make([]string, 0)
	for i := 0; i < 5; i++ {
		*clock = clock.Add(time.Second)
		entry, errCode := m.CreateTodoEntry(&model.TodoEntry{Title: "t", Description: "d"})
		assert.Equal(t, http.StatusCreated, errCode)
		ids = append(ids, entry.ID)
	}

	entries, errCode := m.GetTodoEntries(2, 0)
	assert.Equal(t, http.StatusFound, errCode)
	assert.Len(t, entries, 2)
	assert.Equal(t, ids[4], entries[0].ID)
	assert.Equal(t, ids[3], entries[1].ID)

	entries, _ = m.GetTodoEntries(10, 4)
	assert.Len(t, entries, 1)
	assert.Equal(t, ids[0], entries[0].ID)

	entries, errCode = m.GetTodoEntries(10, 20)
	assert.Equal(t, http.StatusFound, errCode)
	assert.NotNil(t, entries)
	assert.Len(t, entries, 0)

	title := "new"
	updated, errCode := m.UpdateTodoEntry(ids[0], &title, nil)
	assert.Equal(t, http.StatusAccepted, errCode)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "d", updated.Description)
}

func TestListTiesOrderedByID(t *testing.T) {
	m, _ := newTestStore()

	for i := 0; i < 3; i++ {
		m.CreateGuestbookEntry(&model.GuestbookEntry{Name: "n", Message: "m"})
	}

	entries, _ := m.GetGuestbookEntries(3, 0)
	assert.Len(t, entries, 3)
	assert.True(t, entries[0].ID > entries[1].ID)
	assert.True(t, entries[1].ID > entries[2].ID)
}

func TestClarityCacheMatching(t *testing.T) {
	m, clock := newTestStore()
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	params := model.ClarityParams{
		NumOfDays:  1,
		Dimension1: model.DimensionPtr(model.DimensionOS),
	}

	request, errCode := m.ReserveClarityRequest(params, since, *clock, 10)
	assert.Equal(t, http.StatusCreated, errCode)
	assert.True(t, request.IsPending())

	_, errCode = m.GetCachedClarityRequest(params, since)
	assert.Equal(t, http.StatusNotFound, errCode)

	errCode = m.CompleteClarityRequest(request.ID, &postgres.Jsonb{RawMessage: []byte(`[{"metricName":"Traffic"}]`)})
	assert.Equal(t, http.StatusAccepted, errCode)

	cached, errCode := m.GetCachedClarityRequest(params, since)
	assert.Equal(t, http.StatusFound, errCode)
	assert.JSONEq(t, `[{"metricName":"Traffic"}]`, string(cached.ResponseData.RawMessage))

	// Different dimensions, nil dimensions and yesterday's rows do not match.
	other := params
	other.Dimension1 = model.DimensionPtr(model.DimensionBrowser)
	_, errCode = m.GetCachedClarityRequest(other, since)
	assert.Equal(t, http.StatusNotFound, errCode)

	_, errCode = m.GetCachedClarityRequest(model.ClarityParams{NumOfDays: 1}, since)
	assert.Equal(t, http.StatusNotFound, errCode)

	_, errCode = m.GetCachedClarityRequest(params, since.AddDate(0, 0, 1))
	assert.Equal(t, http.StatusNotFound, errCode)
}

func TestClarityReservationLimit(t *testing.T) {
	m, clock := newTestStore()
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	params := model.ClarityParams{NumOfDays: 2}

	var wg sync.WaitGroup
	codes := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, code := m.ReserveClarityRequest(params, since, *clock, 10)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		if code == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 10, created)

	count, _ := m.CountClarityRequestsSince(since)
	assert.Equal(t, 10, count)

	// Releasing a reservation frees quota.
	assert.Equal(t, http.StatusAccepted, m.ReleaseClarityRequest(1))
	assert.Equal(t, http.StatusNotFound, m.ReleaseClarityRequest(1))
	count, _ = m.CountClarityRequestsSince(since)
	assert.Equal(t, 9, count)

	_, errCode := m.ReserveClarityRequest(params, since, *clock, 10)
	assert.Equal(t, http.StatusCreated, errCode)

	// A new day starts a new count.
	count, _ = m.CountClarityRequestsSince(since.AddDate(0, 0, 1))
	assert.Equal(t, 0, count)
}
