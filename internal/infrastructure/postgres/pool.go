package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/portal-notas/pkg/config"
)

const (
	applicationName = "portal-notas"
	pingTimeout     = 5 * time.Second
)

// NewPool abre el pool para el DocumentStore. El documento es una sola fila, así que el pool es
// chico; el arranque falla rápido si la base no responde y la API sigue con el store en memoria.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	// Docker sin IPv6: los hosts administrados a veces publican AAAA primero.
	poolConfig.ConnConfig.DialFunc = dialPreferIPv4(net.DefaultResolver, &net.Dialer{Timeout: pingTimeout})

	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal (total_value del historial de guardados)
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// ipv4Lookup es la parte del resolver que usa el dial (tests).
type ipv4Lookup interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

type dialContext interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// dialPreferIPv4 conecta a la primera IPv4 del host; sin IPv4 (o con un literal) usa el dial normal.
func dialPreferIPv4(r ipv4Lookup, d dialContext) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if target, ok := ipv4Target(ctx, r, addr); ok {
			return d.DialContext(ctx, "tcp4", target)
		}
		return d.DialContext(ctx, network, addr)
	}
}

func ipv4Target(ctx context.Context, r ipv4Lookup, addr string) (string, bool) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || net.ParseIP(host) != nil {
		return "", false
	}
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		return "", false
	}
	return net.JoinHostPort(ips[0].String(), port), true
}
