package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconInfo     = "\uf05a" // info
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconFile     = "\uf15b" // file
	IconEye      = "\uf06e" // eye
	IconEyeSlash = "\uf070" // eye slash
	IconVideo    = "\uf03d" // video camera
	IconCursor   = "\uf054" // chevron right
)
