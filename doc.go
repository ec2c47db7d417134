// Package sitefinder wires the resolution pipeline from a config.Config.
//
// The core packages take every dependency explicitly. This package is the
// one place that chooses concrete implementations: the cache store, the
// fetcher and its politeness policy, the search backends, the DNS/TLS prober
// and the zap/Prometheus observer. Commands and embedding programs build a
// Service once and share it across resolutions.
//
// Example usage:
//
//	cfg, err := config.Load("sitefinder.yaml")
//	if err != nil {
//		return err
//	}
//	svc, err := sitefinder.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	out, err := svc.Resolve(ctx, company.Query{Name: "Acme Güvenlik Ltd"})
package sitefinder
