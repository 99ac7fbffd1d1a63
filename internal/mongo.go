package internal

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pay24/config"
	"pay24/entity"
	"pay24/services"
)

const (
	collectionLog           = "payment_log"
	collectionOrders        = "orders"
	collectionSettings      = "settings"
	collectionNotifications = "notifications"
)

// settingsAvailableGateways is the settings document holding the
// gateway list fetched from the server.
const settingsAvailableGateways = "available_gateways"

// MongoDB implements the order store. Connections are opened per
// operation, which keeps the client free of long-lived connection
// state at the cost of a handshake per call.
type MongoDB struct {
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	return &MongoDB{
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(ctx context.Context, connection *mongo.Client) {
	if err := connection.Disconnect(ctx); err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionOrders)
	filter := bson.D{{Key: "order_id", Value: id}}
	var order entity.Order
	if err = collection.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (m *MongoDB) UpdateOrder(ctx context.Context, order *entity.Order) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionOrders)
	filter := bson.D{{Key: "order_id", Value: order.ID}}
	set := bson.M{"$set": order}
	_, err = collection.UpdateOne(ctx, filter, set, options.Update().SetUpsert(true))
	return err
}

func (m *MongoDB) SaveAvailableGateways(ctx context.Context, ids []string) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionSettings)
	filter := bson.D{{Key: "key", Value: settingsAvailableGateways}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "key", Value: settingsAvailableGateways},
			{Key: "value", Value: ids},
		}},
	}
	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (m *MongoDB) GetAvailableGateways(ctx context.Context) ([]string, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionSettings)
	filter := bson.D{{Key: "key", Value: settingsAvailableGateways}}
	var doc struct {
		Key   string   `bson:"key"`
		Value []string `bson:"value"`
	}
	if err = collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return []string{}, nil
		}
		return nil, err
	}
	return doc.Value, nil
}

func (m *MongoDB) SaveNotification(ctx context.Context, record *entity.NotificationRecord) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionNotifications)
	_, err = collection.InsertOne(ctx, record)
	return err
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	ctx := context.Background()
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(ctx, data)
	return err
}
