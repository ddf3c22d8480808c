package types

type CreateConnectionRequest struct {
	FromLocationID string `json:"from_location_id" validate:"required" example:"hall"`
	ToLocationID   string `json:"to_location_id" validate:"required" example:"kitchen"`
	Label          string `json:"label"`
}

type TransferItemsRequest struct {
	FromLocationID string `json:"from_location_id" validate:"required"`
	ToLocationID   string `json:"to_location_id" validate:"required,nefield=FromLocationID"`
	// ItemID restricts the transfer to the hotspots of one item when set.
	ItemID string `json:"item_id"`
}

type TransferItemsResult struct {
	Transferred int64 `json:"transferred"`
}

type WaitlistRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"max=120"`
}

type WaitlistResult struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	EmailSent bool   `json:"email_sent"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token" validate:"required,len=64,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
