package source

import (
	"ngramsubset/internal/artifact"
	"ngramsubset/internal/language"
)

func loadModule(ds *Dataset, data []byte) error {
	env, err := artifact.Parse(string(data))
	if err != nil {
		return err
	}
	ds.Table = env.Ngrams
	ds.Type = env.Type
	if len(env.Languages) > 0 {
		catalog, err := language.NewCatalog(env.Languages)
		if err != nil {
			return err
		}
		ds.Catalog = catalog
	}
	return nil
}
