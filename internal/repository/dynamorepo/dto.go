package dynamorepo

import (
	"time"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
)

// DynamoDTO represents the persistence layer DTO for DynamoDB
// It maps the domain model to DynamoDB's key structure where:
// - PK (partition key) is the exercise kind
// - SK (sort key) is the record ID
type DynamoDTO struct {
	PK       string    `dynamodbav:"PK"` // Partition Key - maps from Kind
	SK       string    `dynamodbav:"SK"` // Sort Key - maps from ID
	Input    string    `dynamodbav:"Input"`
	Valid    bool      `dynamodbav:"Valid"`
	Result   int64     `dynamodbav:"Result"`
	Overflow bool      `dynamodbav:"Overflow,omitempty"`
	Reason   string    `dynamodbav:"Reason,omitempty"`
	EvalTime time.Time `dynamodbav:"EvalTime"`
}

// ToDomain converts a DynamoDTO to a domain model EvaluationRecord
func (dto *DynamoDTO) ToDomain() *model.EvaluationRecord {
	return &model.EvaluationRecord{
		ID:       dto.SK,
		Kind:     exercise.Kind(dto.PK),
		Input:    dto.Input,
		Valid:    dto.Valid,
		Result:   dto.Result,
		Overflow: dto.Overflow,
		Reason:   dto.Reason,
		EvalTime: dto.EvalTime,
	}
}

// FromDomain creates a DynamoDTO from a domain model EvaluationRecord
func FromDomain(record *model.EvaluationRecord) *DynamoDTO {
	return &DynamoDTO{
		PK:       string(record.Kind),
		SK:       record.ID,
		Input:    record.Input,
		Valid:    record.Valid,
		Result:   record.Result,
		Overflow: record.Overflow,
		Reason:   record.Reason,
		EvalTime: record.EvalTime,
	}
}

// ToDomainList converts a slice of DynamoDTOs to domain model EvaluationRecords
func ToDomainList(dtos []*DynamoDTO) []*model.EvaluationRecord {
	records := make([]*model.EvaluationRecord, len(dtos))
	for i, dto := range dtos {
		records[i] = dto.ToDomain()
	}
	return records
}
