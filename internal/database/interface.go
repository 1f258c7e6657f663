package database

import (
	"github.com/safooraa838/FitSync/internal/identity"
	"github.com/safooraa838/FitSync/internal/store"
)

var (
	_ identity.Directory      = (*Database)(nil)
	_ store.Source            = (*Database)(nil)
	_ identity.SessionStorage = (*Sessions)(nil)
)
