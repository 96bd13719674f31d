package entity

// RoleShopOwner marks accounts that run a shop and receive seller-facing copy.
const RoleShopOwner = "SHOP_OWNER"

type User struct {
	ID       int64
	Username string
	Email    string
	Role     string
}
