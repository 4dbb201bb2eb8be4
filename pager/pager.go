package pager

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Token is the decoded form of a continuation cursor: the sort-field value
// and record id of the last record on the previous page. The id is the
// tiebreak so records sharing a sort value are never skipped or repeated
// while the underlying set is static.
type Token struct {
	Value string `json:"v"`
	ID    string `json:"id"`
}

// Encode renders a token as the opaque cursor handed to clients.
func Encode(t Token) string {
	data, _ := json.Marshal(t)
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode parses a client-supplied cursor. Garbage in, error out.
func Decode(cursor string) (Token, error) {
	var t Token
	data, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return t, fmt.Errorf("invalid cursor: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("invalid cursor: %w", err)
	}
	return t, nil
}

// Spec configures one paged listing: the sort field, its direction, the
// tiebreak id field, and the page size.
type Spec struct {
	Field   string
	IDField string
	Desc    bool
	Limit   int64

	// Parse converts a cursor's string value back into the BSON-comparable
	// type of Field (time, int, ...). Identity when nil.
	Parse func(string) (any, error)
}

// Sort is the (field, id) sort document for this spec.
func (s Spec) Sort() bson.D {
	dir := 1
	if s.Desc {
		dir = -1
	}
	return bson.D{{Key: s.Field, Value: dir}, {Key: s.IDField, Value: dir}}
}

// Apply merges the after-cursor condition into filter. An empty cursor means
// the first page and leaves filter untouched.
func (s Spec) Apply(filter bson.M, cursor string) (bson.M, error) {
	if cursor == "" {
		return filter, nil
	}

	tok, err := Decode(cursor)
	if err != nil {
		return nil, err
	}

	value := any(tok.Value)
	if s.Parse != nil {
		value, err = s.Parse(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", err)
		}
	}

	cmp := "$gt"
	if s.Desc {
		cmp = "$lt"
	}

	after := bson.M{"$or": []bson.M{
		{s.Field: bson.M{cmp: value}},
		{s.Field: value, s.IDField: bson.M{cmp: tok.ID}},
	}}

	if len(filter) == 0 {
		return after, nil
	}
	return bson.M{"$and": []bson.M{filter, after}}, nil
}

// FindPage fetches one page. It reads limit+1 records so the returned cursor
// is empty exactly when the listing is exhausted; repeated calls therefore
// touch ceil(total/limit) pages and see each record once while the set is
// static. The last callback extracts the continuation token from a record.
func FindPage[T any](ctx context.Context, coll *mongo.Collection, s Spec, filter bson.M, cursor string, last func(T) Token) ([]T, string, error) {
	merged, err := s.Apply(filter, cursor)
	if err != nil {
		return nil, "", err
	}

	opts := options.Find().SetSort(s.Sort()).SetLimit(s.Limit + 1)
	cur, err := coll.Find(ctx, merged, opts)
	if err != nil {
		return nil, "", err
	}
	defer cur.Close(ctx)

	records := []T{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, "", err
	}

	next := ""
	if int64(len(records)) > s.Limit {
		records = records[:s.Limit]
		next = Encode(last(records[len(records)-1]))
	}
	return records, next, nil
}
