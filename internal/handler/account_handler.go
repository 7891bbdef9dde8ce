package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"bank-service/internal/domain"
	"bank-service/internal/errors"
	"bank-service/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type CreateAccountRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type AmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// AccountResponse is the account view exposed to clients.
type AccountResponse struct {
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	Balance                string `json:"balance"`
	NotificationPreference string `json:"notification_preference"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		FirstName:              account.FirstName,
		LastName:               account.LastName,
		Balance:                account.Balance.String(),
		NotificationPreference: account.NotificationPreference,
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "first_name and last_name are required"))
		return
	}

	account, err := h.accountService.CreateAccount(req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAccountResponse(account))
}

func (h *AccountHandler) GetAccountByID(w http.ResponseWriter, r *http.Request) {
	id, appErr := accountIDVar(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) GetAccountByFirstName(w http.ResponseWriter, r *http.Request) {
	firstName := mux.Vars(r)["first_name"]

	account, err := h.accountService.GetAccountByFirstName(firstName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) GetAccountByLastName(w http.ResponseWriter, r *http.Request) {
	lastName := mux.Vars(r)["last_name"]

	account, err := h.accountService.GetAccountByLastName(lastName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id, amount, ok := h.decodeMutation(w, r)
	if !ok {
		return
	}

	account, err := h.accountService.Deposit(id, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, amount, ok := h.decodeMutation(w, r)
	if !ok {
		return
	}

	account, err := h.accountService.Withdraw(id, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

// decodeMutation parses the account id path variable and the amount body
// shared by deposits and withdrawals. It writes the error response itself
// and reports success through ok.
func (h *AccountHandler) decodeMutation(w http.ResponseWriter, r *http.Request) (id int64, amount decimal.Decimal, ok bool) {
	id, appErr := accountIDVar(r)
	if appErr != nil {
		writeError(w, appErr)
		return 0, decimal.Zero, false
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return 0, decimal.Zero, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "amount is required"))
		return 0, decimal.Zero, false
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
		return 0, decimal.Zero, false
	}

	return id, amount, true
}
