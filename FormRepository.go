package main

import (
	"bytes"

	json "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"formSheet/cellname"
	"formSheet/contracts"
)

var (
	definitionKey     = []byte("definition")
	cellsBucketName   = []byte("cells")
	EmptyFormError    = errors.New("form should have at least one cell")
	errorNoFormBucket = errors.New("form bucket is missing")
)

// FormRepository keeps one bbolt bucket per form: the definition as JSON and a nested
// bucket of cell texts typed since the form was created
type FormRepository struct {
	db         *bbolt.DB
	serializer contracts.CellSerializer
	newId      func() string
}

func NewFormRepository(db *bbolt.DB, serializer contracts.CellSerializer) *FormRepository {
	return &FormRepository{
		db:         db,
		serializer: serializer,
		newId:      uuid.NewString,
	}
}

func (r *FormRepository) CreateForm(definition contracts.FormDefinition) (formId string, err error) {
	if err = validateDefinition(definition); err != nil {
		return "", err
	}

	payload, err := json.Marshal(definition)
	if err != nil {
		return "", errors.Wrap(err, "encode form definition")
	}

	formId = r.newId()
	err = r.db.Batch(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucket([]byte(formId))
		if err != nil {
			return err
		}
		if _, err = bucket.CreateBucket(cellsBucketName); err != nil {
			return err
		}
		return bucket.Put(definitionKey, payload)
	})
	if err != nil {
		return "", errors.Wrapf(err, "store form `%s`", formId)
	}
	return formId, nil
}

func validateDefinition(definition contracts.FormDefinition) error {
	if len(definition.Cells) == 0 {
		return EmptyFormError
	}
	for name := range definition.Cells {
		if !cellname.IsData(name) && !cellname.IsHeader(name) {
			return errors.Wrapf(contracts.InvalidCellNameError, "cell `%s`", name)
		}
	}
	for column := range definition.Columns {
		if cellname.ColumnNumber(column) < 1 {
			return errors.Wrapf(contracts.InvalidCellNameError, "column `%s`", column)
		}
	}
	return nil
}

func (r *FormRepository) GetForm(formId string) (*contracts.FormDefinition, error) {
	definition := &contracts.FormDefinition{}

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(formId))
		if bucket == nil {
			return errors.Wrapf(contracts.FormNotFoundError, "form `%s`", formId)
		}
		return json.Unmarshal(bucket.Get(definitionKey), definition)
	})
	if err != nil {
		return nil, err
	}
	return definition, nil
}

// SaveCellTexts writes the texts which differ from the stored ones
func (r *FormRepository) SaveCellTexts(formId string, texts map[string]string) error {
	return r.db.Batch(func(tx *bbolt.Tx) error {
		cells, err := cellsBucket(tx, formId)
		if err != nil {
			return err
		}

		for name, text := range texts {
			serialized := r.serializer.Marshal(name, text)
			if bytes.Equal(cells.Get([]byte(name)), serialized) {
				continue
			}
			if err = cells.Put([]byte(name), serialized); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *FormRepository) GetCellTexts(formId string) (map[string]string, error) {
	texts := make(map[string]string)

	err := r.db.View(func(tx *bbolt.Tx) error {
		cells, err := cellsBucket(tx, formId)
		if err != nil {
			return err
		}

		return cells.ForEach(func(_, v []byte) error {
			name, text, err := r.serializer.Unmarshal(v)
			if err == nil {
				texts[name] = text
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return texts, nil
}

func cellsBucket(tx *bbolt.Tx, formId string) (*bbolt.Bucket, error) {
	bucket := tx.Bucket([]byte(formId))
	if bucket == nil {
		return nil, errors.Wrapf(contracts.FormNotFoundError, "form `%s`", formId)
	}
	cells := bucket.Bucket(cellsBucketName)
	if cells == nil {
		return nil, errors.Wrapf(errorNoFormBucket, "form `%s`", formId)
	}
	return cells, nil
}
