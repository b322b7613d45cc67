// seed crea el esquema de base de datos y carga la configuración inicial del
// back office: la primera versión del esquema de comisiones (13 grupos), la
// primera versión de constantes de precios y un usuario administrador.
//
// Uso: go run ./cmd/seed
// Idempotente: si ya existe una versión activa o el usuario admin, los salta.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/comisiones-api/pkg/config"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS versiones_esquema (
	id               UUID PRIMARY KEY,
	nombre           TEXT NOT NULL,
	descripcion      TEXT NOT NULL DEFAULT '',
	vigente_desde    TIMESTAMPTZ NOT NULL,
	vigente_hasta    TIMESTAMPTZ,
	creado_por       TEXT NOT NULL DEFAULT '',
	creado_en        TIMESTAMPTZ NOT NULL,
	comision_base    JSONB NOT NULL,
	adicional_cuotas JSONB NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS versiones_esquema_activa
	ON versiones_esquema ((1)) WHERE vigente_hasta IS NULL;

CREATE TABLE IF NOT EXISTS versiones_constantes (
	id                           UUID PRIMARY KEY,
	nombre                       TEXT NOT NULL,
	descripcion                  TEXT NOT NULL DEFAULT '',
	vigente_desde                TIMESTAMPTZ NOT NULL,
	vigente_hasta                TIMESTAMPTZ,
	creado_por                   TEXT NOT NULL DEFAULT '',
	creado_en                    TIMESTAMPTZ NOT NULL,
	monto_tier1                  NUMERIC(14,2) NOT NULL,
	monto_tier2                  NUMERIC(14,2) NOT NULL,
	monto_tier3                  NUMERIC(14,2) NOT NULL,
	comision_tier1               NUMERIC(14,2) NOT NULL,
	comision_tier2               NUMERIC(14,2) NOT NULL,
	comision_tier3               NUMERIC(14,2) NOT NULL,
	varios_porcentaje            NUMERIC(7,3) NOT NULL,
	grupo_comision_default       INT NOT NULL,
	markup_adicional_cuotas      NUMERIC(7,3) NOT NULL,
	comision_tienda_nube         NUMERIC(14,2) NOT NULL,
	comision_tienda_nube_tarjeta NUMERIC(14,2) NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS versiones_constantes_activa
	ON versiones_constantes ((1)) WHERE vigente_hasta IS NULL;

CREATE TABLE IF NOT EXISTS auditoria_versiones (
	id         UUID PRIMARY KEY,
	kind       TEXT NOT NULL,
	version_id UUID NOT NULL,
	motivo     TEXT NOT NULL,
	user_id    TEXT NOT NULL DEFAULT '',
	creado_en  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS calculos (
	id                    UUID PRIMARY KEY,
	user_id               TEXT NOT NULL DEFAULT '',
	creado_en             TIMESTAMPTZ NOT NULL,
	costo                 NUMERIC(14,2) NOT NULL,
	moneda_costo          TEXT NOT NULL,
	iva                   NUMERIC(7,3) NOT NULL,
	costo_envio           NUMERIC(14,2) NOT NULL,
	precio_final          NUMERIC(14,2) NOT NULL,
	tipo_cambio           NUMERIC(14,4) NOT NULL,
	grupo_comision        INT NOT NULL,
	cuotas                INT NOT NULL,
	esquema_version_id    UUID NOT NULL,
	constantes_version_id UUID NOT NULL,
	costo_ars             NUMERIC(14,2) NOT NULL,
	comision_total        NUMERIC(14,2) NOT NULL,
	limpio                NUMERIC(14,2) NOT NULL,
	markup_pct            NUMERIC(9,2) NOT NULL,
	cuotario              JSONB NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS calculos_creado_en ON calculos (creado_en DESC);

CREATE TABLE IF NOT EXISTS usuarios (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL,
	overrides     JSONB NOT NULL DEFAULT '{}',
	status        TEXT NOT NULL DEFAULT 'active',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
`

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatal().Err(err).Msg("crear esquema de base")
	}
	log.Info().Msg("esquema de base verificado")

	esquemas := versioning.NewManager[*entity.CommissionSchedule](
		entity.KindComisiones, postgres.NewScheduleVersionRepository(pool))
	constantes := versioning.NewManager[*entity.PricingConstants](
		entity.KindConstantes, postgres.NewConstantsVersionRepository(pool))

	seedSchedule(ctx, log, esquemas)
	seedConstants(ctx, log, constantes)
	seedAdmin(ctx, log, pool)

	log.Info().Msg("seed finalizado")
}

// seedSchedule carga la versión inicial del esquema: 13 grupos con su
// comisión base y los adicionales por cuotas para 3, 6, 9 y 12.
func seedSchedule(ctx context.Context, log *logger.Logger, m *versioning.Manager[*entity.CommissionSchedule]) {
	if _, err := m.GetActive(ctx); err == nil {
		log.Info().Msg("esquema de comisiones ya tiene versión activa, se omite")
		return
	}

	base := map[int]decimal.Decimal{
		1:  dec("13"),
		2:  dec("10"),
		3:  dec("8"),
		4:  dec("15"),
		5:  dec("18"),
		6:  dec("20"),
		7:  dec("12"),
		8:  dec("16"),
		9:  dec("22"),
		10: dec("25"),
		11: dec("28"),
		12: dec("30"),
		13: dec("35"),
	}
	adicional := map[int]decimal.Decimal{
		3:  dec("5.5"),
		6:  dec("9"),
		9:  dec("12.5"),
		12: dec("15.5"),
	}

	creada, err := m.Create(ctx, &entity.CommissionSchedule{
		VersionMeta: entity.VersionMeta{
			Nombre:       "Esquema inicial",
			Descripcion:  "Carga inicial de comisiones por grupo",
			VigenteDesde: time.Now().Truncate(24 * time.Hour),
			CreadoPor:    "seed",
		},
		ComisionBase:    base,
		AdicionalCuotas: adicional,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed esquema de comisiones")
	}
	log.Info().Str("version_id", creada.ID).Msg("esquema de comisiones sembrado")
}

// seedConstants carga las constantes de precios vigentes.
func seedConstants(ctx context.Context, log *logger.Logger, m *versioning.Manager[*entity.PricingConstants]) {
	if _, err := m.GetActive(ctx); err == nil {
		log.Info().Msg("constantes de precios ya tienen versión activa, se omite")
		return
	}

	creada, err := m.Create(ctx, &entity.PricingConstants{
		VersionMeta: entity.VersionMeta{
			Nombre:       "Constantes iniciales",
			Descripcion:  "Carga inicial de constantes de precios",
			VigenteDesde: time.Now().Truncate(24 * time.Hour),
			CreadoPor:    "seed",
		},
		MontoTier1:                dec("15000"),
		MontoTier2:                dec("24000"),
		MontoTier3:                dec("33000"),
		ComisionTier1:             dec("1095"),
		ComisionTier2:             dec("2190"),
		ComisionTier3:             dec("2628"),
		VariosPorcentaje:          dec("6.5"),
		GrupoComisionDefault:      1,
		MarkupAdicionalCuotas:     dec("5"),
		ComisionTiendaNube:        dec("99"),
		ComisionTiendaNubeTarjeta: dec("499"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed constantes de precios")
	}
	log.Info().Str("version_id", creada.ID).Msg("constantes de precios sembradas")
}

// seedAdmin crea el usuario administrador inicial. El password sale de
// SEED_ADMIN_PASSWORD; nunca se loguea.
func seedAdmin(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) {
	repo := postgres.NewUserRepository(pool)

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@comisiones.local"
	}
	existente, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuario admin")
	}
	if existente != nil {
		log.Info().Str("email", email).Msg("usuario admin ya existe, se omite")
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es requerido para crear el admin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}

	now := time.Now()
	err = repo.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}
	log.Info().Str("email", email).Msg("usuario admin creado")
}
