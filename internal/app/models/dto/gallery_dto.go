package dto

// AlbumForm is posted by admins to create an album
type AlbumForm struct {
	Title       string `form:"title" binding:"required,notblank,max=200"`
	Description string `form:"description" binding:"max=1000"`
}

// PhotoForm carries the optional caption of an upload; the file travels as the "photo" part
type PhotoForm struct {
	Caption string `form:"caption" binding:"max=300"`
}
