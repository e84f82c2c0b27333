package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chapterfund-backend/internal/services"
	"chapterfund-backend/pkg/utils"
)

type ReceiptHandler struct {
	Service *services.ReceiptService
}

func NewReceiptHandler(s *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{Service: s}
}

// DownloadTransferReceipt streams the handover receipt PDF for a transfer.
func (h *ReceiptHandler) DownloadTransferReceipt(w http.ResponseWriter, r *http.Request) {
	transferID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}

	pdfBytes, err := h.Service.TransferReceiptPDF(r.Context(), transferID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Failed to generate receipt: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=transfer-receipt-%d.pdf", transferID))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
