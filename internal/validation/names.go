package validation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stonexiaolei/tuzhan-data/pkg/utils"
)

// ChainDirectory resolves chain ids to display names. The configured
// mapping wins; when a chain master database is connected it serves as
// a fallback for unmapped ids. Both sources are optional.
type ChainDirectory struct {
	DB       *sql.DB
	Mappings map[string]string
}

func NewChainDirectory(db *sql.DB, mappings map[string]string) *ChainDirectory {
	return &ChainDirectory{DB: db, Mappings: mappings}
}

// ResolveName returns "" (and no error) when the chain is simply
// unknown; errors are reserved for lookup failures.
func (d *ChainDirectory) ResolveName(ctx context.Context, chainID string) (string, error) {
	if name, ok := d.Mappings[chainID]; ok {
		return name, nil
	}

	if d.DB == nil {
		return "", nil
	}

	id, err := utils.ParseChainID(chainID)
	if err != nil {
		return "", err
	}

	var name string
	err = d.DB.QueryRowContext(ctx, "SELECT name FROM chains WHERE id = @p1", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("chain name lookup failed: %w", err)
	}
	return name, nil
}
