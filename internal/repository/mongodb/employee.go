package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type employeeDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	FullName   string             `bson:"full_name"`
	Email      string             `bson:"email"`
	Department string             `bson:"department"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d employeeDocument) toEntity() employee.Employee {
	return employee.Employee{
		ID:         hexID(d.ID),
		EmployeeID: d.EmployeeID,
		FullName:   d.FullName,
		Email:      d.Email,
		Department: d.Department,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

type employeeRepositoryImpl struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *database.MongoDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{collection: db.Collection(database.EmployeesCollection)}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, limit int) ([]employee.Employee, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var docs []employeeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, 0, len(docs))
	for _, doc := range docs {
		employees = append(employees, doc.toEntity())
	}
	return employees, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	var doc employeeDocument
	err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return doc.toEntity(), nil
}

// ExistsByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	return r.exists(ctx, bson.M{"employee_id": employeeID})
}

// ExistsByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeEmployeeID string) (bool, error) {
	filter := bson.M{"email": email}
	if excludeEmployeeID != "" {
		filter["employee_id"] = bson.M{"$ne": excludeEmployeeID}
	}
	return r.exists(ctx, filter)
}

func (r *employeeRepositoryImpl) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	doc := employeeDocument{
		ID:         primitive.NewObjectID(),
		EmployeeID: newEmployee.EmployeeID,
		FullName:   newEmployee.FullName,
		Email:      newEmployee.Email,
		Department: newEmployee.Department,
		CreatedAt:  newEmployee.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return doc.toEntity(), nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, employeeID string, fields employee.UpdateFields) (employee.Employee, error) {
	set := bson.M{}
	if fields.FullName != nil {
		set["full_name"] = *fields.FullName
	}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.Department != nil {
		set["department"] = *fields.Department
	}
	if len(set) == 0 {
		return r.GetByEmployeeID(ctx, employeeID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc employeeDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return doc.toEntity(), nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func mapEmployeeWriteError(err error) error {
	switch {
	case isDuplicateOn(err, database.EmployeeIDUniqueIndex):
		return employee.ErrEmployeeIDExists
	case isDuplicateOn(err, database.EmployeeEmailUniqueIndex):
		return employee.ErrEmailExists
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("unexpected duplicate key: %w", err)
	default:
		return err
	}
}
