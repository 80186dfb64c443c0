package vectorindex

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// pointIDString normalizes a Qdrant point ID to its string form.
func pointIDString(id *qdrant.PointId) (string, error) {
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("vectorindex: unexpected PointId type: %T", v)
	}
}
