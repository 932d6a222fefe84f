package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/optionscout/wheelscreener/src/handler"
	"github.com/optionscout/wheelscreener/src/marketdata"
	"github.com/optionscout/wheelscreener/src/service"
	"github.com/optionscout/wheelscreener/src/utils"
)

func main() {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Warnf("main: %v", err)
	}

	tradierURL := os.Getenv("TRADIER_API_URL")
	tradierToken := os.Getenv("TRADIER_BEARER_TOKEN")
	if tradierURL == "" || tradierToken == "" {
		log.Fatalf("missing TRADIER_API_URL or TRADIER_BEARER_TOKEN environment variable")
	}

	var polygonClient *marketdata.PolygonClient
	if apiKey := os.Getenv("POLYGON_API_KEY"); apiKey != "" {
		polygonClient = marketdata.NewPolygonClient(apiKey)
	} else {
		log.Warn("missing POLYGON_API_KEY environment variable: covered-call band fetches will fail")
	}

	provider := marketdata.NewCompositeProvider(marketdata.NewTradierClient(tradierURL, tradierToken), polygonClient)

	svc := service.NewWheelService(provider)
	if configPath := os.Getenv("SCREENER_CONFIG"); configPath != "" {
		if err := svc.LoadConfig(configPath); err != nil {
			log.Fatalf("main: %v", err)
		}
	}

	router := mux.NewRouter()
	handler.NewScreenHandler(svc).SetupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infof("listening on :%s", port)

	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), router); err != nil {
		log.Fatalf("main: server error: %v", err)
	}
}
