// providersim serves the three provider endpoints with canned
// payloads so the engine can run locally without marketplace
// credentials.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	r := mux.NewRouter()
	r.HandleFunc("/api/remains", serveRemains).Methods("GET")
	r.HandleFunc("/api/storage", serveStorage).Methods("GET")
	r.HandleFunc("/api/sales", serveSales).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	log.Printf("provider simulator listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}

func serveRemains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, []domain.WarehouseItem{
		{ItemID: 14442001, Brand: "Alpina", VendorCode: "ALP-BOOT-41", SubjectName: "Boots", Size: "41", StockQuantity: 340, Price: 4200, Category: "footwear", Volume: 6.2},
		{ItemID: 14442002, Brand: "Alpina", VendorCode: "ALP-BOOT-42", SubjectName: "Boots", Size: "42", StockQuantity: 12, Price: 4200, Category: "footwear", Volume: 6.2},
		{ItemID: 17720115, Brand: "Borey", VendorCode: "BOR-TS-M", SubjectName: "T-Shirt", Size: "M", StockQuantity: 95, Price: 990, Category: "apparel", Volume: 0.8},
		{ItemID: 20031777, Brand: "Cirrus", VendorCode: "CIR-PB-10", SubjectName: "Power Bank", Size: "", StockQuantity: 56, Price: 2490, Category: "electronics", Volume: 0.4},
	})
}

func serveStorage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, []domain.StorageLedgerRow{
		{ItemID: 14442001, PeriodCost: 510, Volume: 6.2},
		{ItemID: 17720115, PeriodCost: 42, Volume: 0.8},
	})
}

func serveSales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]float64{
		"14442001": 2.1,
		"14442002": 1.8,
		"17720115": 6.5,
	})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
