package connection

import (
	"liveface.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.Connect()
}
