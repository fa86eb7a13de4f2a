package memory

import (
	"net/http"
	"time"

	"website/model/model"

	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm/dialects/postgres"
)

func copyClarityRequest(request model.ClarityRequest) *model.ClarityRequest {
	var out model.ClarityRequest
	copier.Copy(&out, &request)
	if request.ResponseData != nil {
		data := make([]byte, len(request.ResponseData.RawMessage))
		copy(data, request.ResponseData.RawMessage)
		out.ResponseData = &postgres.Jsonb{RawMessage: data}
	}
	return &out
}

func (m *Memory) GetCachedClarityRequest(params model.ClarityParams, since time.Time) (*model.ClarityRequest, int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var found *model.ClarityRequest
	for i := range m.clarityRequests {
		request := &m.clarityRequests[i]
		if request.IsPending() || request.RequestDate.Before(since) || !params.Matches(request) {
			continue
		}
		if found == nil || request.RequestDate.After(found.RequestDate) {
			found = request
		}
	}

	if found == nil {
		return nil, http.StatusNotFound
	}
	return copyClarityRequest(*found), http.StatusFound
}

func (m *Memory) ReserveClarityRequest(params model.ClarityParams, since, at time.Time,
	limit int) (*model.ClarityRequest, int) {

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.countSince(since) >= limit {
		return nil, http.StatusTooManyRequests
	}

	m.nextClarityID++
	request := model.ClarityRequest{
		ID:          m.nextClarityID,
		RequestDate: at,
		NumOfDays:   params.NumOfDays,
		Dimension1:  params.Dimension1,
		Dimension2:  params.Dimension2,
		Dimension3:  params.Dimension3,
	}
	m.clarityRequests = append(m.clarityRequests, request)
	return copyClarityRequest(request), http.StatusCreated
}

func (m *Memory) CompleteClarityRequest(id uint64, responseData *postgres.Jsonb) int {
	if responseData == nil {
		return http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := range m.clarityRequests {
		if m.clarityRequests[i].ID == id {
			data := make([]byte, len(responseData.RawMessage))
			copy(data, responseData.RawMessage)
			m.clarityRequests[i].ResponseData = &postgres.Jsonb{RawMessage: data}
			return http.StatusAccepted
		}
	}
	return http.StatusNotFound
}

func (m *Memory) ReleaseClarityRequest(id uint64) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := range m.clarityRequests {
		if m.clarityRequests[i].ID == id && m.clarityRequests[i].IsPending() {
			m.clarityRequests = append(m.clarityRequests[:i], m.clarityRequests[i+1:]...)
			return http.StatusAccepted
		}
	}
	return http.StatusNotFound
}

func (m *Memory) CountClarityRequestsSince(since time.Time) (int, int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.countSince(since), http.StatusFound
}

func (m *Memory) countSince(since time.Time) int {
	count := 0
	for _, request := range m.clarityRequests {
		if !request.RequestDate.Before(since) {
			count++
		}
	}
	return count
}
