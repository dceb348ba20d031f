package jsonsql

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zoobzio/jsonsql/base"
	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/mssql"
	"github.com/zoobzio/jsonsql/mysql"
	"github.com/zoobzio/jsonsql/postgres"
	"github.com/zoobzio/jsonsql/sqlite"
)

// Dialects are immutable once built, so each is built once and shared by
// every Builder.
var dialects = map[string]func() *dialect.Dialect{
	base.Name:     sync.OnceValue(base.New),
	mssql.Name:    sync.OnceValue(mssql.New),
	postgres.Name: sync.OnceValue(postgres.New),
	sqlite.Name:   sync.OnceValue(sqlite.New),
	mysql.Name:    sync.OnceValue(mysql.New),
}

var dialectAliases = map[string]string{
	"postgres": postgres.Name,
	"mariadb":  mysql.Name,
}

// Dialects returns the names of the available dialects.
func Dialects() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupDialect(name string) (*dialect.Dialect, error) {
	if alias, ok := dialectAliases[name]; ok {
		name = alias
	}
	build, ok := dialects[name]
	if !ok {
		return nil, render.NewConfigError("dialect", fmt.Sprintf("unknown dialect %q", name))
	}
	return build(), nil
}
