// portalctl administra la base del portal desde la línea de comandos: respaldo, restauración,
// administrador inicial e historial de guardados. Usa el mismo almacenamiento que la API.
//
// Uso:
//
//	portalctl export --format csv --out respaldo.csv
//	portalctl import respaldo.json --yes
//	portalctl seed-admin
//	portalctl history --limit 10
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/portal-notas/internal/application/auth"
	"github.com/jhoicas/portal-notas/internal/application/backup"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/access"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-notas/internal/infrastructure/storage"
	"github.com/jhoicas/portal-notas/pkg/config"
	"github.com/jhoicas/portal-notas/pkg/logger"
)

// operator identidad con la que la CLI invoca los casos de uso.
var operator = access.Viewer{ID: "portalctl", Role: entity.RoleAdmin}

// env lo que cada comando necesita: configuración y almacenamiento abierto.
type env struct {
	cfg    *config.Config
	opened *storage.Opened
	state  *state.Controller
}

// opener abre el entorno; los tests lo reemplazan por uno en memoria.
type opener func(ctx context.Context) (*env, error)

func main() {
	if err := newRootCmd(openEnv).Execute(); err != nil {
		os.Exit(1)
	}
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "portalctl"})
	// sin fallback: la CLI nunca debe operar sobre una base en memoria por accidente
	opened, err := storage.Open(ctx, cfg, false)
	if err != nil {
		return nil, err
	}
	st, err := state.Load(ctx, opened.Store)
	if err != nil {
		opened.Close()
		return nil, err
	}
	return &env{cfg: cfg, opened: opened, state: st}, nil
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Administración de la base del portal de notas",
		SilenceUsage:  true,
	}
	root.AddCommand(exportCmd(open), importCmd(open), seedAdminCmd(open), historyCmd(open))
	return root
}

// withEnv abre el entorno, ejecuta fn y libera la conexión.
func withEnv(cmd *cobra.Command, open opener, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := open(ctx)
	if err != nil {
		return err
	}
	defer e.opened.Close()
	return fn(ctx, e)
}

func exportCmd(open opener) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exportar notas, usuarios y fornecedores (json o csv)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				att, err := backup.NewBackupUseCase(e.state).Export(ctx, operator, format)
				if err != nil {
					return err
				}
				if out == "-" {
					_, err = cmd.OutOrStdout().Write(att.Content)
					return err
				}
				if out == "" {
					out = att.FileName
				}
				if err := os.WriteFile(out, att.Content, 0o644); err != nil {
					return fmt.Errorf("escribir respaldo: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "respaldo escrito en %s (%d bytes)\n", out, len(att.Content))
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&format, "format", backup.FormatJSON, "Formato: json o csv")
	f.StringVar(&out, "out", "", "Archivo de salida (\"-\" = stdout; vacío = nombre sugerido)")
	return cmd
}

func importCmd(open opener) *cobra.Command {
	var (
		format string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "import <archivo>",
		Short: "Restaurar un respaldo; sin --yes solo muestra lo que se va a sobrescribir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("leer respaldo: %w", err)
			}
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				preview, err := backup.NewBackupUseCase(e.state).
					Import(ctx, operator, filepath.Base(args[0]), content, format, yes)
				if err != nil && preview == nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "formato:   %s\n", preview.Format)
				fmt.Fprintf(w, "actual:    %d notas, %d usuarios, %d fornecedores\n",
					preview.Current.TotalInvoices, preview.Current.TotalUsers, preview.Current.TotalSuppliers)
				fmt.Fprintf(w, "respaldo:  %d notas, %d usuarios, %d fornecedores\n",
					preview.Incoming.TotalInvoices, preview.Incoming.TotalUsers, preview.Incoming.TotalSuppliers)
				if !preview.Applied {
					fmt.Fprintln(w, "nada aplicado; repita con --yes para reemplazar la base")
					return nil
				}
				if errors.Is(err, domain.ErrPersistence) {
					return fmt.Errorf("la base fue reemplazada pero no se pudo guardar: %w", err)
				}
				fmt.Fprintln(w, "base reemplazada")
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&format, "format", "", "json o csv (se deduce si falta)")
	f.BoolVarP(&yes, "yes", "y", false, "Aplicar la restauración")
	return cmd
}

func seedAdminCmd(open opener) *cobra.Command {
	var login, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crear el administrador inicial si no hay usuarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				seed := auth.SeedConfig{
					Login:             e.cfg.Auth.SeedAdminLogin,
					Password:          e.cfg.Auth.SeedAdminPassword,
					NotificationEmail: e.cfg.Auth.SeedAdminEmail,
					Hash:              e.cfg.Auth.HashPasswords,
				}
				if login != "" {
					seed.Login = login
				}
				if password != "" {
					seed.Password = password
				}
				created, err := auth.NewAuthUseCase(e.state, auth.JWTConfig{}).SeedAdmin(ctx, seed)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "administrador %q creado\n", seed.Login)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "ya existen usuarios; nada que hacer")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&login, "login", "", "Login (por defecto SEED_ADMIN_LOGIN)")
	cmd.Flags().StringVar(&password, "password", "", "Contraseña (por defecto SEED_ADMIN_PASSWORD)")
	return cmd
}

func historyCmd(open opener) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Últimos guardados de la base (solo STORAGE_DRIVER=postgres)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, e *env) error {
				if e.opened.Postgres == nil {
					return fmt.Errorf("historial disponible solo con STORAGE_DRIVER=%s (actual: %s)",
						config.StoragePostgres, e.opened.Driver)
				}
				records, err := e.opened.Postgres.History(ctx, limit)
				if err != nil {
					return err
				}
				printHistory(cmd.OutOrStdout(), records)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Cantidad de guardados")
	return cmd
}

func printHistory(w io.Writer, records []postgres.SaveRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "sin guardados")
		return
	}
	fmt.Fprintf(w, "%-20s %7s %8s %12s %14s\n", "FECHA", "NOTAS", "USUARIOS", "FORNECEDORES", "VALOR TOTAL")
	for _, r := range records {
		fmt.Fprintf(w, "%-20s %7d %8d %12d %14s\n",
			r.SavedAt.Local().Format("2006-01-02 15:04:05"), r.Invoices, r.Users, r.Suppliers, r.TotalValue.StringFixed(2))
	}
}
