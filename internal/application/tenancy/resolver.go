// Package tenancy resuelve el tenant (empresa) a partir del host de la petición.
package tenancy

import (
	"context"
	"net"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Resolver mapea hosts entrantes a empresas. El registro se carga una vez al
// arranque (dominios propios + subdominios del wildcard); la resolución en sí
// es un lookup puro sin I/O, idéntico para el mismo host en cada llamada.
type Resolver struct {
	byHost     map[string]entity.TenantRef // host exacto → tenant (propios y subdominios registrados)
	baseDomain string                      // base del wildcard, p.ej. "tuapp.com"
	dev        *entity.TenantRef           // tenant fijo para localhost; nil = sin fallback
}

// Config parámetros del resolver.
type Config struct {
	BaseDomain string
	Dev        *entity.TenantRef
}

// NewResolver construye el resolver con un registro ya cargado.
func NewResolver(cfg Config, domains []repository.ResolvedDomain) *Resolver {
	byHost := make(map[string]entity.TenantRef, len(domains))
	for _, d := range domains {
		byHost[strings.ToLower(d.Host)] = d.Tenant
	}
	return &Resolver{
		byHost:     byHost,
		baseDomain: strings.TrimPrefix(strings.ToLower(cfg.BaseDomain), "."),
		dev:        cfg.Dev,
	}
}

// Load construye el resolver leyendo el registro desde el repositorio.
func Load(ctx context.Context, cfg Config, repo repository.CompanyDomainRepository) (*Resolver, error) {
	domains, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewResolver(cfg, domains), nil
}

// Resolve devuelve el tenant para un host o nil si no hay match.
// Orden, primer match gana:
//  1. match exacto contra el registro (dominios propios y subdominios dados de alta)
//  2. sufijo del wildcard *.base: extrae el subdominio, rechaza "www", busca label+base
//  3. fallback de desarrollo para localhost / 127.0.0.1
//
// La ausencia de match no es un error: significa "tenant desconocido" y el
// caller decide (redirect a login o 401).
func (r *Resolver) Resolve(hostRaw string) *entity.TenantRef {
	host := normalizeHost(hostRaw)
	if host == "" {
		return nil
	}

	if t, ok := r.byHost[host]; ok {
		ref := t
		return &ref
	}

	if r.baseDomain != "" {
		suffix := "." + r.baseDomain
		if strings.HasSuffix(host, suffix) {
			label := strings.TrimSuffix(host, suffix)
			if label != "" && label != "www" && !strings.Contains(label, ".") {
				if t, ok := r.byHost[label+suffix]; ok {
					ref := t
					return &ref
				}
			}
			return nil
		}
	}

	if r.dev != nil && (strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1")) {
		ref := *r.dev
		return &ref
	}

	return nil
}

// normalizeHost pasa a minúsculas y recorta el puerto ("A.Tuapp.com:443" → "a.tuapp.com").
func normalizeHost(hostRaw string) string {
	host := strings.ToLower(strings.TrimSpace(hostRaw))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
