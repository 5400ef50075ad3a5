package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/db/model"
)

// TransactionToModel 거래 로그 엔티티를 DB 모델로 변환
func TransactionToModel(tx *entity.Transaction) (*model.TransactionModel, error) {
	if tx == nil {
		return nil, nil
	}

	request, err := ToJSON(tx.Request)
	if err != nil {
		return nil, err
	}
	response, err := ToJSON(tx.Response)
	if err != nil {
		return nil, err
	}

	m := &model.TransactionModel{
		TransactionTypeID:    tx.TypeID,
		Reference:            tx.Reference,
		SourceIP:             tx.SourceIP,
		Request:              request,
		Response:             response,
		NotificationResponse: tx.NotificationResponse,
		StateID:              tx.StateID,
	}
	m.ID = tx.ID
	return m, nil
}

// ToJSON map 을 JSON 컬럼 값으로 직렬화. nil 은 SQL NULL 입니다.
func ToJSON(v map[string]interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
