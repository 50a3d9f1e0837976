package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiremefor/backend/internal/config"
	"github.com/hiremefor/backend/internal/repository"
	"github.com/hiremefor/backend/internal/sms"
	"github.com/hiremefor/backend/internal/utils"
	"github.com/hiremefor/backend/internal/validation"
)

func newAuthTestHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{SessionTTLHrs: 24, OtpTTLMin: 60, BcryptCost: 4}
	h := NewAuthHandler(cfg,
		repository.NewWorkerRepo(db),
		repository.NewWorkerSessionRepo(db),
		repository.NewOtpRepo(db),
		sms.NewClient("", "", "Test")) // development mode, nothing is sent
	return h, mock
}

func postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.EchoValidator{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequestOTPRejectsBadPhone(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	for _, phone := range []string{"", "12345", "08212345678", "08212345ab"} {
		c, rec := postJSON(`{"phone_number":"` + phone + `"}`)
		require.NoError(t, h.RequestOTP(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "phone %q", phone)
		assert.Contains(t, rec.Body.String(), "Phone number must be 10 digits")
	}
}

func TestRequestOTPRejectsRegisteredPhone(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectQuery("SELECT id FROM workers WHERE phone_number=").
		WithArgs("0821234567").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	c, rec := postJSON(`{"phone_number":"0821234567"}`)
	require.NoError(t, h.RequestOTP(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phone number already registered")
}

func TestVerifyOTPInvalidCode(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectQuery("SELECT id FROM otp_codes").
		WithArgs("0821234567", "000000", "registration").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := postJSON(`{"phone_number":"0821234567","code":"000000"}`)
	require.NoError(t, h.VerifyOTP(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired OTP")
}

func TestVerifyOTPSuccessReturnsTempToken(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectQuery("SELECT id FROM otp_codes").
		WithArgs("0821234567", "123456", "registration").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE otp_codes SET used=1").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := postJSON(`{"phone_number":"0821234567","code":"123456"}`)
	require.NoError(t, h.VerifyOTP(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["temp_token"])
	assert.Equal(t, "0821234567", resp["phone_number"])
}

func TestCreatePinRejectsBadPin(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	for _, pin := range []string{"", "123", "12345", "abcd"} {
		c, rec := postJSON(`{"phone_number":"0821234567","pin":"` + pin + `"}`)
		require.NoError(t, h.CreatePin(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "pin %q", pin)
		assert.Contains(t, rec.Body.String(), "PIN must be 4 digits")
	}
}

func TestCreatePinReturnsVerifiableHash(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	c, rec := postJSON(`{"phone_number":"0821234567","pin":"1234"}`)
	require.NoError(t, h.CreatePin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, utils.VerifySecret(resp["pin_hash"], "1234"))
	assert.False(t, utils.VerifySecret(resp["pin_hash"], "4321"))
}

// Unknown phone and wrong PIN must be indistinguishable to the caller.
func TestLoginUniform401(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	hash, err := utils.HashSecret("1234", 4)
	require.NoError(t, err)

	// Unknown phone.
	mock.ExpectQuery("SELECT id, pin_hash, first_name, surname FROM workers").
		WithArgs("0800000000").
		WillReturnError(sql.ErrNoRows)
	c, rec := postJSON(`{"phone_number":"0800000000","pin":"1234"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	unknownBody := rec.Body.String()

	// Known phone, wrong PIN.
	mock.ExpectQuery("SELECT id, pin_hash, first_name, surname FROM workers").
		WithArgs("0821234567").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pin_hash", "first_name", "surname"}).
			AddRow(7, hash, "Thabo", "Mokoena"))
	c, rec = postJSON(`{"phone_number":"0821234567","pin":"9999"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, unknownBody, rec.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	hash, err := utils.HashSecret("1234", 4)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, pin_hash, first_name, surname FROM workers").
		WithArgs("0821234567").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pin_hash", "first_name", "surname"}).
			AddRow(7, hash, "Thabo", "Mokoena"))
	mock.ExpectExec("INSERT INTO worker_sessions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := postJSON(`{"phone_number":"0821234567","pin":"1234"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token  string `json:"token"`
		Worker struct {
			ID        uint64 `json:"id"`
			FirstName string `json:"first_name"`
		} `json:"worker"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, uint64(7), resp.Worker.ID)
	assert.Equal(t, "Thabo", resp.Worker.FirstName)
}

// Logout without a bearer token is still a clean 200.
func TestLogoutWithoutToken(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	c, rec := postJSON(`{}`)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out successfully")
}

func TestRegisterBioTooLong(t *testing.T) {
	h, _ := newAuthTestHandler(t)

	longBio := strings.Repeat("a", 501)
	c, rec := postJSON(`{"phone_number":"0821234567","pin_hash":"x","first_name":"Thabo","surname":"Mokoena","age":30,"gender":"male","area_id":1,"bio":"` + longBio + `"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bio must be 500 characters or less")
}

// Skills are optional at registration; the response carries only the new
// worker id, and the client logs in with the PIN afterwards.
func TestRegisterWithoutSkills(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO workers").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	c, rec := postJSON(`{"phone_number":"0821234567","pin_hash":"$2a$04$fakefakefakefakefakefake","first_name":"Thabo","surname":"Mokoena","age":30,"gender":"male","area_id":1}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 7, resp["worker_id"])
	assert.NotContains(t, resp, "token")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicatePhone(t *testing.T) {
	h, mock := newAuthTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO workers").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '0821234567' for key 'workers.phone_number'"))
	mock.ExpectRollback()

	c, rec := postJSON(`{"phone_number":"0821234567","pin_hash":"x","first_name":"Thabo","surname":"Mokoena","age":30,"gender":"male","area_id":1}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phone number already registered")
}
