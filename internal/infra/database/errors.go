package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/atumia/atumia-core/internal/entity"
)

// lib/pq errorCodeNames
// https://github.com/lib/pq/blob/master/error.go#L178
const (
	undefinedColumn = "42703"
	undefinedTable  = "42P01"
)

type errorKind int

const (
	kindTransient errorKind = iota
	kindNotFound
	kindSchemaDrift
)

// Assinaturas de drift por mensagem, para quando o erro chega achatado
// em texto (PostgREST do Supabase, por exemplo) e não como *pq.Error.
// public.dados_cliente é a tabela legada incompatível de instalações
// antigas do motor.
var driftSignatures = []string{
	`column "org_id" does not exist`,
	`relation "public.leads"`,
	`relation "public.organizations"`,
	`relation "public.conversations"`,
	`public.dados_cliente`,
}

// classifyError é o ÚNICO lugar que inspeciona erro nativo do banco.
// Todo o resto do código só enxerga o enum de tipos.
func classifyError(err error) errorKind {
	if err == nil {
		return kindTransient
	}

	if errors.Is(err, sql.ErrNoRows) {
		return kindNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == undefinedColumn || string(pqErr.Code) == undefinedTable {
			return kindSchemaDrift
		}
	}

	msg := err.Error()
	for _, sig := range driftSignatures {
		if strings.Contains(msg, sig) {
			return kindSchemaDrift
		}
	}

	return kindTransient
}

// wrapStoreError aplica a política única de erros da camada de dados:
// drift vira o sentinela ErrDatabaseNotInitialized (e sobe intacto até
// a borda), ErrNoRows vira not-found, o resto passa como transiente.
func wrapStoreError(op string, err error) error {
	switch classifyError(err) {
	case kindSchemaDrift:
		return fmt.Errorf("%s: %w", op, entity.ErrDatabaseNotInitialized)
	case kindNotFound:
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
