package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"bank-service/internal/errors"
	"bank-service/internal/service"
)

type TransactionHandler struct {
	accountService     *service.AccountService
	transactionService *service.TransactionService
}

func NewTransactionHandler(
	accountService *service.AccountService,
	transactionService *service.TransactionService,
) *TransactionHandler {
	return &TransactionHandler{
		accountService:     accountService,
		transactionService: transactionService,
	}
}

type TransferRequest struct {
	FromAccountID int64  `json:"from_account_id" validate:"required"`
	ToAccountID   int64  `json:"to_account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "from_account_id, to_account_id and amount are required"))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
		return
	}

	if err := h.accountService.WireTransfer(req.FromAccountID, req.ToAccountID, amount); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	id, appErr := accountIDVar(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	transactions, err := h.transactionService.ListRecent(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}
