package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/optionscout/wheelscreener/src/optionmodels"
	"github.com/optionscout/wheelscreener/src/service"
)

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := errorResponse{Type: errType, Msg: err.Error()}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.Errorf("setErrorResponse: encode: %v", encodeErr)
	}
}

// ScreenHandler exposes the screening pipelines over HTTP.
type ScreenHandler struct {
	Service *service.WheelService
	decoder *schema.Decoder
}

func NewScreenHandler(svc *service.WheelService) *ScreenHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &ScreenHandler{
		Service: svc,
		decoder: decoder,
	}
}

func (h *ScreenHandler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/screen/{symbol}/puts", h.screenPuts).Methods(http.MethodGet)
	router.HandleFunc("/screen/{symbol}/calls", h.screenCalls).Methods(http.MethodGet)
	router.HandleFunc("/band/{symbol}", h.volatilityBand).Methods(http.MethodGet)
}

func (h *ScreenHandler) screenPuts(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	params := h.Service.PutParams(symbol)
	if err := h.decoder.Decode(&params, r.URL.Query()); err != nil {
		setErrorResponse("screenPuts: failed to decode query params", http.StatusBadRequest, err, w)
		return
	}

	if err := params.Validate(); err != nil {
		setErrorResponse("screenPuts: invalid params", http.StatusBadRequest, err, w)
		return
	}

	result, err := h.Service.ScreenPuts(r.Context(), symbol, params)
	if err != nil {
		log.Errorf("screenPuts: %v", err)
		setErrorResponse("screenPuts: screening failed", http.StatusInternalServerError, err, w)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.Errorf("screenPuts: %v", err)
	}
}

func (h *ScreenHandler) screenCalls(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	params := h.Service.CallParams(symbol)
	if err := h.decoder.Decode(&params, r.URL.Query()); err != nil {
		setErrorResponse("screenCalls: failed to decode query params", http.StatusBadRequest, err, w)
		return
	}

	if err := params.Validate(); err != nil {
		setErrorResponse("screenCalls: invalid params", http.StatusBadRequest, err, w)
		return
	}

	result, err := h.Service.ScreenCalls(r.Context(), symbol, params)
	if err != nil {
		log.Errorf("screenCalls: %v", err)
		setErrorResponse("screenCalls: screening failed", http.StatusInternalServerError, err, w)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.Errorf("screenCalls: %v", err)
	}
}

func (h *ScreenHandler) volatilityBand(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	spot, err := h.Service.Provider.FetchUnderlyingPrice(r.Context(), symbol)
	if err != nil {
		log.Errorf("volatilityBand: %v", err)
		setErrorResponse("volatilityBand: failed to fetch underlying price", http.StatusBadGateway, err, w)
		return
	}

	band, err := h.Service.VolatilityBand(r.Context(), symbol, spot)
	if err != nil {
		log.Errorf("volatilityBand: %v", err)
		setErrorResponse("volatilityBand: failed to compute band", http.StatusInternalServerError, err, w)
		return
	}

	response := struct {
		Band optionmodels.VolatilityBand `json:"band"`
		Spot float64                     `json:"spot"`
	}{Band: band, Spot: spot}

	if err := setResponse(response, w); err != nil {
		log.Errorf("volatilityBand: %v", err)
	}
}
