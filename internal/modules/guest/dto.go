package guest

type GuestRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=100"`
	Email   string `json:"email" form:"email" binding:"omitempty,email,max=100"`
	Phone   string `json:"phone" form:"phone" binding:"required,max=20"`
	Address string `json:"address" form:"address"`
	IDProof string `json:"id_proof" form:"id_proof" binding:"max=50"`
}

type ListGuestsQuery struct {
	Q string `form:"q"`
}
