package stats

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omniscale/changemonger/log"
)

// StartHTTP serves /metrics and /debug/pprof on bind in the background.
func StartHTTP(bind string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Println("[error] http:", http.ListenAndServe(bind, nil))
	}()
	log.Printf("[info] serving metrics and pprof on %s", bind)
}
