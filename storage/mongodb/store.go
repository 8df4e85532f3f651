package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"phonebook-server/models"
	"phonebook-server/storage"
)

var _ storage.PersonStore = (*PersonStore)(nil)
var _ storage.UserStore = (*UserStore)(nil)

// Connect opens a client and returns the named database.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client.Database(database), nil
}

// PersonStore persists contacts in the "persons" collection.
type PersonStore struct {
	collection *mongo.Collection
}

// NewPersonStore ensures the unique name index and returns the store.
func NewPersonStore(ctx context.Context, db *mongo.Database) (*PersonStore, error) {
	collection := db.Collection("persons")
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("create persons name index: %w", err)
	}
	return &PersonStore{collection: collection}, nil
}

func (s *PersonStore) Insert(ctx context.Context, person models.Person) (models.Person, error) {
	if person.ID.IsZero() {
		person.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, person); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Person{}, storage.ErrDuplicate
		}
		return models.Person{}, err
	}
	return person, nil
}

func (s *PersonStore) FindByName(ctx context.Context, name string) (models.Person, error) {
	var person models.Person
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&person)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Person{}, storage.ErrNotFound
		}
		return models.Person{}, err
	}
	return person, nil
}

func (s *PersonStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Person, error) {
	var person models.Person
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&person)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Person{}, storage.ErrNotFound
		}
		return models.Person{}, err
	}
	return person, nil
}

func (s *PersonStore) All(ctx context.Context, filter storage.PhoneFilter) ([]models.Person, error) {
	query := bson.M{}
	switch filter {
	case storage.PhoneSet:
		query["phone"] = bson.M{"$exists": true}
	case storage.PhoneUnset:
		query["phone"] = bson.M{"$exists": false}
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	persons := []models.Person{}
	if err := cursor.All(ctx, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *PersonStore) Count(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{})
}

func (s *PersonStore) UpdatePhone(ctx context.Context, id primitive.ObjectID, phone string) (models.Person, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	// An empty phone means "no number": the field is removed so the
	// $exists filter in All keeps partitioning correctly.
	update := bson.M{"$set": bson.M{"phone": phone}}
	if phone == "" {
		update = bson.M{"$unset": bson.M{"phone": ""}}
	}

	var person models.Person
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&person)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Person{}, storage.ErrNotFound
		}
		return models.Person{}, err
	}
	return person, nil
}

// UserStore persists identities in the "users" collection.
type UserStore struct {
	collection *mongo.Collection
}

// NewUserStore ensures the unique username index and returns the store.
func NewUserStore(ctx context.Context, db *mongo.Database) (*UserStore, error) {
	collection := db.Collection("users")
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("create users username index: %w", err)
	}
	return &UserStore{collection: collection}, nil
}

func (s *UserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, storage.ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) SetFriends(ctx context.Context, id primitive.ObjectID, friends []primitive.ObjectID) (models.User, error) {
	if friends == nil {
		friends = []primitive.ObjectID{}
	}
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	update := bson.M{"$set": bson.M{"friends": friends}}

	var user models.User
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
