package repository

import (
	"context"
	"errors"
	"time"

	"favorites-api/internal/customer/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customersCollection = "customers"
	errorsCollection    = "errors"
)

// CollectionProvider hands out collections from a shared connection.
type CollectionProvider interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
}

type customerDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	AccessToken      string             `bson:"accessToken,omitempty"`
	FavoriteProducts []domain.Product   `bson:"favoriteProducts"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d *customerDocument) toDomain() *domain.Customer {
	favorites := d.FavoriteProducts
	if favorites == nil {
		favorites = []domain.Product{}
	}
	return &domain.Customer{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Email:            d.Email,
		AccessToken:      d.AccessToken,
		FavoriteProducts: favorites,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type mongoCustomerRepository struct {
	collections CollectionProvider
}

// NewMongoCustomerRepository creates a CustomerRepository backed by the
// "customers" collection.
func NewMongoCustomerRepository(collections CollectionProvider) CustomerRepository {
	return &mongoCustomerRepository{collections: collections}
}

func (m *mongoCustomerRepository) Add(ctx context.Context, params domain.AddCustomerParams) (*domain.Customer, error) {
	coll, err := m.customers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := customerDocument{
		Name:             params.Name,
		Email:            params.Email,
		FavoriteProducts: []domain.Product{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.StoreFailure("failed to add customer", err)
	}
	doc.ID = result.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (m *mongoCustomerRepository) LoadByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return m.findOne(ctx, "failed to load customer by email", bson.M{"email": email}, nil)
}

func (m *mongoCustomerRepository) LoadByID(ctx context.Context, id string) (*domain.Customer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return m.findOne(ctx, "failed to load customer by id", bson.M{"_id": oid}, nil)
}

func (m *mongoCustomerRepository) LoadByToken(ctx context.Context, token string) (*domain.Customer, error) {
	return m.findOne(ctx, "failed to load customer by token", bson.M{"accessToken": token}, nil)
}

func (m *mongoCustomerRepository) UpdateAccessToken(ctx context.Context, customerID, token string) error {
	oid, ok := objectID(customerID)
	if !ok {
		return nil
	}
	coll, err := m.customers(ctx)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"accessToken": token, "updatedAt": time.Now()}}
	if _, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return domain.StoreFailure("failed to update access token", err)
	}
	return nil
}

func (m *mongoCustomerRepository) UpdateCustomer(ctx context.Context, params domain.UpdateCustomerParams) (*domain.Customer, error) {
	return m.findOneAndUpdate(ctx, "failed to update customer", params.ID, bson.M{
		"$set": bson.M{
			"name":      params.Name,
			"email":     params.Email,
			"updatedAt": time.Now(),
		},
	})
}

func (m *mongoCustomerRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	coll, err := m.customers(ctx)
	if err != nil {
		return false, err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, domain.StoreFailure("failed to delete customer", err)
	}
	return result.DeletedCount > 0, nil
}

func (m *mongoCustomerRepository) FindFavoriteProduct(ctx context.Context, productID, customerID string) (*domain.Product, error) {
	oid, ok := objectID(customerID)
	if !ok {
		return nil, nil
	}

	filter := bson.M{"_id": oid, "favoriteProducts.id": productID}
	projection := options.FindOne().SetProjection(bson.M{"favoriteProducts.$": 1})
	customer, err := m.findOne(ctx, "failed to find favorite product", filter, projection)
	if err != nil || customer == nil || len(customer.FavoriteProducts) == 0 {
		return nil, err
	}
	return &customer.FavoriteProducts[0], nil
}

func (m *mongoCustomerRepository) AddFavoriteProduct(ctx context.Context, product domain.Product, customerID string) (*domain.Customer, error) {
	return m.findOneAndUpdate(ctx, "failed to add favorite product", customerID, bson.M{
		"$push": bson.M{"favoriteProducts": product},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

func (m *mongoCustomerRepository) RemoveFavoriteProduct(ctx context.Context, productID, customerID string) (*domain.Customer, error) {
	return m.findOneAndUpdate(ctx, "failed to remove favorite product", customerID, bson.M{
		"$pull": bson.M{"favoriteProducts": bson.M{"id": productID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

// EnsureMongoIndexes adds lookup indexes for email and access token. Email is
// not unique at the store level.
func EnsureMongoIndexes(ctx context.Context, collections CollectionProvider) error {
	coll, err := collections.Collection(ctx, customersCollection)
	if err != nil {
		return domain.StoreFailure("failed to open customers collection", err)
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "accessToken", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return domain.StoreFailure("failed to create indexes", err)
	}
	return nil
}

func (m *mongoCustomerRepository) customers(ctx context.Context) (*mongo.Collection, error) {
	coll, err := m.collections.Collection(ctx, customersCollection)
	if err != nil {
		return nil, domain.StoreFailure("failed to open customers collection", err)
	}
	return coll, nil
}

func (m *mongoCustomerRepository) findOne(ctx context.Context, op string, filter bson.M, opts *options.FindOneOptions) (*domain.Customer, error) {
	coll, err := m.customers(ctx)
	if err != nil {
		return nil, err
	}

	var doc customerDocument
	var findOpts []*options.FindOneOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	if err := coll.FindOne(ctx, filter, findOpts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.StoreFailure(op, err)
	}
	return doc.toDomain(), nil
}

func (m *mongoCustomerRepository) findOneAndUpdate(ctx context.Context, op, id string, update bson.M) (*domain.Customer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	coll, err := m.customers(ctx)
	if err != nil {
		return nil, err
	}

	var doc customerDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.StoreFailure(op, err)
	}
	return doc.toDomain(), nil
}

// objectID parses a hex id. Ids that are not ObjectIDs cannot match any
// stored customer.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

type mongoErrorLogRepository struct {
	collections CollectionProvider
}

// NewMongoErrorLogRepository stores error logs in the "errors" collection.
func NewMongoErrorLogRepository(collections CollectionProvider) ErrorLogRepository {
	return &mongoErrorLogRepository{collections: collections}
}

func (m *mongoErrorLogRepository) LogError(ctx context.Context, stack string) error {
	coll, err := m.collections.Collection(ctx, errorsCollection)
	if err != nil {
		return domain.StoreFailure("failed to open errors collection", err)
	}

	_, err = coll.InsertOne(ctx, bson.M{"stack": stack, "date": time.Now()})
	if err != nil {
		return domain.StoreFailure("failed to log error", err)
	}
	return nil
}
