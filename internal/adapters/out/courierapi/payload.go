package courierapi

// parcelBatch is the envelope of every courier request.
type parcelBatch[T any] struct {
	Colis []T `json:"Colis"`
}

// parcel is one shipment in an add_colis request. Field names are the
// courier's.
type parcel struct {
	Tracking      string `json:"Tracking"`
	TypeLivraison string `json:"TypeLivraison"`
	TypeColis     string `json:"TypeColis"`
	Confirmee     string `json:"Confirmee"`
	Client        string `json:"Client"`
	MobileA       string `json:"MobileA"`
	MobileB       string `json:"MobileB"`
	Adresse       string `json:"Adresse"`
	IDWilaya      string `json:"IDWilaya"`
	Commune       string `json:"Commune"`
	Total         string `json:"Total"`
	Note          string `json:"Note"`
	TProduit      string `json:"TProduit"`
	IDExterne     string `json:"id_Externe"`
	Source        string `json:"Source"`
}

type trackingRef struct {
	Tracking string `json:"Tracking"`
}

func trackingBatch(trackingIDs []string) parcelBatch[trackingRef] {
	refs := make([]trackingRef, 0, len(trackingIDs))
	for _, id := range trackingIDs {
		refs = append(refs, trackingRef{Tracking: id})
	}
	return parcelBatch[trackingRef]{Colis: refs}
}
