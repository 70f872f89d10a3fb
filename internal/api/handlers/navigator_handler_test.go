package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mhbaltimore/directory/internal/api/handlers"
	"github.com/mhbaltimore/directory/internal/domain/entities"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

func TestNavigatorHandler_CreateResponse(t *testing.T) {
	submitter := new(MockNavigatorSubmitter)
	want := entities.NavigatorSubmission{
		PrimaryConcern:          "anxiety",
		HelpFor:                 "myself",
		Urgency:                 "within_weeks",
		ServiceFormat:           "either",
		PaymentType:             "medicaid",
		ZipCode:                 "21201",
		OpenToCommunityPrograms: true,
	}
	submitter.On("Submit", mock.Anything, want).Return(&entities.NavigatorResponse{ID: "r1", ZipCode: "21201"}, nil)

	body := `{"primary_concern":"anxiety","help_for":"myself","urgency":"within_weeks",
		"service_format":"either","payment_type":"medicaid","zip_code":"21201","open_to_community_programs":true}`
	rec := httptest.NewRecorder()
	handlers.NewNavigatorHandler(submitter).CreateResponse(rec, httptest.NewRequest(http.MethodPost, "/api/navigator/responses", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Data entities.NavigatorResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "r1", resp.Data.ID)
	submitter.AssertExpectations(t)
}

func TestNavigatorHandler_MalformedBody(t *testing.T) {
	submitter := new(MockNavigatorSubmitter)

	rec := httptest.NewRecorder()
	handlers.NewNavigatorHandler(submitter).CreateResponse(rec, httptest.NewRequest(http.MethodPost, "/api/navigator/responses", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Error.Code)
	submitter.AssertNotCalled(t, "Submit")
}

func TestNavigatorHandler_OversizedBody(t *testing.T) {
	submitter := new(MockNavigatorSubmitter)
	body := `{"primary_concern":"` + strings.Repeat("a", 20<<10) + `"}`

	rec := httptest.NewRecorder()
	handlers.NewNavigatorHandler(submitter).CreateResponse(rec, httptest.NewRequest(http.MethodPost, "/api/navigator/responses", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body too large", decodeError(t, rec).Error.Message)
}

func TestNavigatorHandler_ValidationFailure(t *testing.T) {
	submitter := new(MockNavigatorSubmitter)
	submitter.On("Submit", mock.Anything, mock.Anything).Return(nil, apperrors.NewValidationError("invalid navigator response",
		apperrors.FieldError{Field: "urgency", Message: "is required"}))

	rec := httptest.NewRecorder()
	handlers.NewNavigatorHandler(submitter).CreateResponse(rec, httptest.NewRequest(http.MethodPost, "/api/navigator/responses", strings.NewReader("{}")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	require.Len(t, body.Error.Details, 1)
	assert.Equal(t, "urgency", body.Error.Details[0].Field)
}
