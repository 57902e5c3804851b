package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kanbanbox-be/internal/models"
)

// Mongo implements Store on MongoDB. Transactions map onto driver sessions,
// so isolation and all-or-nothing commit come from the server's snapshot
// semantics (requires a replica set, as any transactional mongo setup does).
type Mongo struct {
	client      *mongo.Client
	boards      *mongo.Collection
	lists       *mongo.Collection
	cards       *mongo.Collection
	memberships *mongo.Collection
	labels      *mongo.Collection
	comments    *mongo.Collection
}

func NewMongo(client *mongo.Client, db *mongo.Database) *Mongo {
	s := &Mongo{
		client:      client,
		boards:      db.Collection("boards"),
		lists:       db.Collection("lists"),
		cards:       db.Collection("cards"),
		memberships: db.Collection("memberships"),
		labels:      db.Collection("labels"),
		comments:    db.Collection("comments"),
	}

	// Ensure indexes
	ctx := context.Background()
	_, _ = s.lists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetName("idx_board_order"),
	})
	_, _ = s.cards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "listId", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetName("idx_list_order"),
	})
	_, _ = s.cards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}},
		Options: options.Index().SetName("idx_board_id"),
	})
	_, _ = s.memberships.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetName("idx_board_user").SetUnique(true),
	})
	_, _ = s.labels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}},
		Options: options.Index().SetName("idx_board_id"),
	})
	_, _ = s.comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cardId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("idx_card_created"),
	})

	return s
}

func (m *Mongo) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, &mongoTx{m})
	})
	return err
}

// mongoTx issues every operation through the session context it receives,
// so all reads and writes belong to the enclosing transaction.
type mongoTx struct {
	s *Mongo
}

func notFound(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (t *mongoTx) Board(ctx context.Context, id string) (*models.Board, error) {
	var b models.Board
	if err := t.s.boards.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (t *mongoTx) PutBoard(ctx context.Context, b *models.Board) error {
	opts := options.Replace().SetUpsert(true)
	_, err := t.s.boards.ReplaceOne(ctx, bson.M{"_id": b.ID}, b, opts)
	return err
}

func (t *mongoTx) DeleteBoard(ctx context.Context, id string) error {
	cardIDs, err := t.cardIDs(ctx, bson.M{"boardId": id})
	if err != nil {
		return err
	}
	if len(cardIDs) > 0 {
		if _, err := t.s.comments.DeleteMany(ctx, bson.M{"cardId": bson.M{"$in": cardIDs}}); err != nil {
			return err
		}
	}
	if _, err := t.s.cards.DeleteMany(ctx, bson.M{"boardId": id}); err != nil {
		return err
	}
	if _, err := t.s.lists.DeleteMany(ctx, bson.M{"boardId": id}); err != nil {
		return err
	}
	if _, err := t.s.labels.DeleteMany(ctx, bson.M{"boardId": id}); err != nil {
		return err
	}
	if _, err := t.s.memberships.DeleteMany(ctx, bson.M{"boardId": id}); err != nil {
		return err
	}
	_, err = t.s.boards.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (t *mongoTx) ArchivedBoards(ctx context.Context, cutoff time.Time) ([]*models.Board, error) {
	filter := bson.M{"archived": true, "archivedAt": bson.M{"$lte": cutoff}}
	cursor, err := t.s.boards.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boards []*models.Board
	if err = cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (t *mongoTx) List(ctx context.Context, id string) (*models.List, error) {
	var l models.List
	if err := t.s.lists.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (t *mongoTx) Lists(ctx context.Context, boardID string) ([]*models.List, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := t.s.lists.Find(ctx, bson.M{"boardId": boardID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []*models.List
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (t *mongoTx) PutList(ctx context.Context, l *models.List) error {
	opts := options.Replace().SetUpsert(true)
	_, err := t.s.lists.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, opts)
	return err
}

func (t *mongoTx) DeleteList(ctx context.Context, id string) error {
	cardIDs, err := t.cardIDs(ctx, bson.M{"listId": id})
	if err != nil {
		return err
	}
	if len(cardIDs) > 0 {
		if _, err := t.s.comments.DeleteMany(ctx, bson.M{"cardId": bson.M{"$in": cardIDs}}); err != nil {
			return err
		}
	}
	if _, err := t.s.cards.DeleteMany(ctx, bson.M{"listId": id}); err != nil {
		return err
	}
	_, err = t.s.lists.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (t *mongoTx) Card(ctx context.Context, id string) (*models.Card, error) {
	var c models.Card
	if err := t.s.cards.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (t *mongoTx) Cards(ctx context.Context, listID string) ([]*models.Card, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := t.s.cards.Find(ctx, bson.M{"listId": listID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []*models.Card
	if err = cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (t *mongoTx) PutCard(ctx context.Context, c *models.Card) error {
	opts := options.Replace().SetUpsert(true)
	_, err := t.s.cards.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, opts)
	return err
}

func (t *mongoTx) DeleteCard(ctx context.Context, id string) error {
	if _, err := t.s.comments.DeleteMany(ctx, bson.M{"cardId": id}); err != nil {
		return err
	}
	_, err := t.s.cards.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (t *mongoTx) Membership(ctx context.Context, boardID, userID string) (*models.Membership, error) {
	var m models.Membership
	filter := bson.M{"boardId": boardID, "userId": userID}
	if err := t.s.memberships.FindOne(ctx, filter).Decode(&m); err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (t *mongoTx) Memberships(ctx context.Context, boardID string) ([]*models.Membership, error) {
	cursor, err := t.s.memberships.Find(ctx, bson.M{"boardId": boardID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ms []*models.Membership
	if err = cursor.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (t *mongoTx) MembershipsForUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	cursor, err := t.s.memberships.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ms []*models.Membership
	if err = cursor.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (t *mongoTx) PutMembership(ctx context.Context, m *models.Membership) error {
	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"boardId": m.BoardID, "userId": m.UserID}
	_, err := t.s.memberships.ReplaceOne(ctx, filter, m, opts)
	return err
}

func (t *mongoTx) DeleteMembership(ctx context.Context, boardID, userID string) error {
	_, err := t.s.memberships.DeleteOne(ctx, bson.M{"boardId": boardID, "userId": userID})
	return err
}

func (t *mongoTx) Label(ctx context.Context, id string) (*models.Label, error) {
	var l models.Label
	if err := t.s.labels.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (t *mongoTx) Labels(ctx context.Context, boardID string) ([]*models.Label, error) {
	cursor, err := t.s.labels.Find(ctx, bson.M{"boardId": boardID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var labels []*models.Label
	if err = cursor.All(ctx, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (t *mongoTx) PutLabel(ctx context.Context, l *models.Label) error {
	opts := options.Replace().SetUpsert(true)
	_, err := t.s.labels.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, opts)
	return err
}

func (t *mongoTx) DeleteLabel(ctx context.Context, id string) error {
	_, err := t.s.labels.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (t *mongoTx) Comments(ctx context.Context, cardID string) ([]*models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := t.s.comments.Find(ctx, bson.M{"cardId": cardID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (t *mongoTx) PutComment(ctx context.Context, c *models.Comment) error {
	_, err := t.s.comments.InsertOne(ctx, c)
	return err
}

func (t *mongoTx) cardIDs(ctx context.Context, filter bson.M) ([]string, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := t.s.cards.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids, nil
}
