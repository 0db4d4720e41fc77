package server

// Server joins the HTTP servers that handle specific resources.
type Server struct {
	SyncServer
}

func NewServer(
	syncServer SyncServer,
) Server {
	return Server{
		SyncServer: syncServer,
	}
}
