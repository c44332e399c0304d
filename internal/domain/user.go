package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleOutletManager Role = "OUTLET_MANAGER"
)

type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"`
	Role      Role                 `bson:"role" json:"role"`
	OutletIDs []primitive.ObjectID `bson:"outlet_ids,omitempty" json:"outlet_ids,omitempty"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// CanManageOutlet reports whether the user may act on the given outlet.
// Admins may act on any outlet; managers only on their assigned ones.
func (u *User) CanManageOutlet(outletID primitive.ObjectID) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	for _, id := range u.OutletIDs {
		if id == outletID {
			return true
		}
	}
	return false
}
