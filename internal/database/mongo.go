// mongo.go
//
// A Go service for the easyform form-building API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of easyform-api.
// easyform-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// easyform-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with easyform-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

const defaultMongoDatabase = "easyform"

// MongoStore is a Store backed by a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// MongoDatabaseName resolves the database name: the path of the URI, then
// DB_NAME, then "easyform".
func MongoDatabaseName(cfg *config.Config) string {
	if cs, err := connstring.ParseAndValidate(cfg.MongoURI); err == nil && cs.Database != "" {
		return cs.Database
	}
	if cfg.DBName != "" {
		return cfg.DBName
	}
	return defaultMongoDatabase
}

// ConnectMongo connects to MONGO_URI and verifies the connection with a ping
func ConnectMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*MongoStore, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(uint64(cfg.DBConnectionLimit)).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	name := MongoDatabaseName(cfg)
	log.Debug("connected to mongodb", zap.String("database", name))

	return NewMongoStore(client, name), nil
}

// NewMongoStore wraps a connected client
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

func (s *MongoStore) companies() *mongo.Collection {
	return s.db.Collection(CompaniesCollection)
}

func (s *MongoStore) forms() *mongo.Collection {
	return s.db.Collection(FormsCollection)
}

func (s *MongoStore) submissions() *mongo.Collection {
	return s.db.Collection(SubmissionsCollection)
}

// idFilter matches the ObjectId form of id when it parses as one, and the literal id.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

func mongoNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// insertedHex returns the hex form of a driver generated ObjectId
func insertedHex(res *mongo.InsertOneResult) string {
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	}
	return fmt.Sprint(res.InsertedID)
}

// ListCompanies returns up to limit companies in natural order
func (s *MongoStore) ListCompanies(ctx context.Context, limit int) ([]models.Company, error) {
	cursor, err := s.companies().Find(ctx, bson.M{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	companies := make([]models.Company, 0)
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// GetCompany finds a company by ObjectId or literal identifier
func (s *MongoStore) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := s.companies().FindOne(ctx, idFilter(id)).Decode(&company); err != nil {
		return nil, mongoNotFound(err)
	}
	return &company, nil
}

// CreateCompany inserts company and sets its generated identifier
func (s *MongoStore) CreateCompany(ctx context.Context, company *models.Company) error {
	res, err := s.companies().InsertOne(ctx, company)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert company: %w", err)
	}
	company.ID = insertedHex(res)
	return nil
}

// UpdateCompany sets the supplied fields and returns the updated company
func (s *MongoStore) UpdateCompany(ctx context.Context, id string, update models.CompanyUpdate) (*models.Company, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Metadata != nil {
		set["metadata"] = *update.Metadata
	}
	if update.ApprovedForms != nil {
		set["approvedForms"] = *update.ApprovedForms
	}
	if len(set) == 0 {
		return s.GetCompany(ctx, id)
	}

	var company models.Company
	err := s.companies().FindOneAndUpdate(ctx, idFilter(id), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&company)
	if err != nil {
		return nil, mongoNotFound(err)
	}
	return &company, nil
}

// AddApprovedForm uses $addToSet; an unmatched company updates nothing
func (s *MongoStore) AddApprovedForm(ctx context.Context, companyID, formID string) error {
	_, err := s.companies().UpdateOne(ctx, idFilter(companyID),
		bson.M{"$addToSet": bson.M{"approvedForms": formID}},
	)
	if err != nil {
		return fmt.Errorf("link approved form: %w", err)
	}
	return nil
}

// ListForms returns up to limit forms, newest first
func (s *MongoStore) ListForms(ctx context.Context, limit int) ([]models.Form, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.forms().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	forms := make([]models.Form, 0)
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return forms, nil
}

// GetForm finds a form by identifier
func (s *MongoStore) GetForm(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	if err := s.forms().FindOne(ctx, idFilter(id)).Decode(&form); err != nil {
		return nil, mongoNotFound(err)
	}
	return &form, nil
}

// CreateForm inserts form; the _id index rejects duplicates
func (s *MongoStore) CreateForm(ctx context.Context, form *models.Form) error {
	if _, err := s.forms().InsertOne(ctx, form); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

// UpdateForm replaces the template fields of a form
func (s *MongoStore) UpdateForm(ctx context.Context, id string, update models.FormUpdate) (*models.Form, error) {
	set := bson.M{
		"title":       update.Title,
		"description": update.Description,
		"category":    update.Category,
		"active":      update.Active,
		"fields":      update.Fields,
		"updatedAt":   update.UpdatedAt,
	}

	var form models.Form
	err := s.forms().FindOneAndUpdate(ctx, idFilter(id), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&form)
	if err != nil {
		return nil, mongoNotFound(err)
	}
	return &form, nil
}

// ApproveForm marks a form approved for companyID
func (s *MongoStore) ApproveForm(ctx context.Context, formID, companyID string, at time.Time) (*models.Form, error) {
	set := bson.M{
		"approved":   true,
		"companyId":  companyID,
		"approvedAt": at,
	}

	var form models.Form
	err := s.forms().FindOneAndUpdate(ctx, idFilter(formID), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&form)
	if err != nil {
		return nil, mongoNotFound(err)
	}
	return &form, nil
}

// ListSubmissions returns up to limit submissions, newest first
func (s *MongoStore) ListSubmissions(ctx context.Context, filter models.SubmissionFilter, limit int) ([]models.Submission, error) {
	query := bson.M{}
	if filter.CompanyID != "" {
		query["companyId"] = filter.CompanyID
	}
	if filter.FormID != "" {
		query["formId"] = filter.FormID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.submissions().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	submissions := make([]models.Submission, 0)
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// GetSubmission finds a submission by ObjectId or literal identifier
func (s *MongoStore) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.submissions().FindOne(ctx, idFilter(id)).Decode(&submission); err != nil {
		return nil, mongoNotFound(err)
	}
	return &submission, nil
}

// CreateSubmission inserts submission and sets its generated identifier
func (s *MongoStore) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	res, err := s.submissions().InsertOne(ctx, submission)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	submission.ID = insertedHex(res)
	return nil
}

// Migrate creates the list and filter indexes
func (s *MongoStore) Migrate(ctx context.Context) error {
	createdDesc := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}

	if _, err := s.forms().Indexes().CreateOne(ctx, createdDesc); err != nil {
		return fmt.Errorf("forms index: %w", err)
	}
	_, err := s.submissions().Indexes().CreateMany(ctx, []mongo.IndexModel{
		createdDesc,
		{Keys: bson.D{{Key: "companyId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "formId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("submissions index: %w", err)
	}
	return nil
}

// Ping checks connectivity against the primary
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
