package seed

import (
	"CineSync/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type stateSeed struct {
	name string
	abbr string
	lat  float64
	lng  float64
}

// 50州及地图中心坐标
var stateData = []stateSeed{
	{"Alabama", "AL", 32.806671, -86.791130},
	{"Alaska", "AK", 61.370716, -152.404419},
	{"Arizona", "AZ", 33.729759, -111.431221},
	{"Arkansas", "AR", 34.969704, -92.373123},
	{"California", "CA", 36.116203, -119.681564},
	{"Colorado", "CO", 39.059811, -105.311104},
	{"Connecticut", "CT", 41.597782, -72.755371},
	{"Delaware", "DE", 39.318523, -75.507141},
	{"Florida", "FL", 27.766279, -81.686783},
	{"Georgia", "GA", 33.040619, -83.643074},
	{"Hawaii", "HI", 21.094318, -157.498337},
	{"Idaho", "ID", 44.240459, -114.478828},
	{"Illinois", "IL", 40.349457, -88.986137},
	{"Indiana", "IN", 39.849426, -86.258278},
	{"Iowa", "IA", 42.011539, -93.210526},
	{"Kansas", "KS", 38.526600, -96.726486},
	{"Kentucky", "KY", 37.668140, -84.670067},
	{"Louisiana", "LA", 31.169546, -91.867805},
	{"Maine", "ME", 44.323535, -69.765261},
	{"Maryland", "MD", 39.063946, -76.802101},
	{"Massachusetts", "MA", 42.230171, -71.530106},
	{"Michigan", "MI", 43.326618, -84.536095},
	{"Minnesota", "MN", 45.694454, -93.900192},
	{"Mississippi", "MS", 32.741646, -89.678696},
	{"Missouri", "MO", 38.456085, -92.288368},
	{"Montana", "MT", 47.052632, -110.454353},
	{"Nebraska", "NE", 41.125370, -98.268082},
	{"Nevada", "NV", 38.313515, -117.055374},
	{"New Hampshire", "NH", 43.452492, -71.563896},
	{"New Jersey", "NJ", 40.298904, -74.521011},
	{"New Mexico", "NM", 34.840515, -106.248482},
	{"New York", "NY", 42.165726, -74.948051},
	{"North Carolina", "NC", 35.630066, -79.806419},
	{"North Dakota", "ND", 47.528912, -99.784012},
	{"Ohio", "OH", 40.388783, -82.764915},
	{"Oklahoma", "OK", 35.565342, -96.928917},
	{"Oregon", "OR", 44.572021, -122.070938},
	{"Pennsylvania", "PA", 40.590752, -77.209755},
	{"Rhode Island", "RI", 41.680893, -71.511780},
	{"South Carolina", "SC", 33.856892, -80.945007},
	{"South Dakota", "SD", 44.299782, -99.438828},
	{"Tennessee", "TN", 35.747845, -86.692345},
	{"Texas", "TX", 31.054487, -97.563461},
	{"Utah", "UT", 40.150032, -111.862434},
	{"Vermont", "VT", 44.045876, -72.710686},
	{"Virginia", "VA", 37.769337, -78.169968},
	{"Washington", "WA", 47.400902, -121.490494},
	{"West Virginia", "WV", 38.491226, -80.954453},
	{"Wisconsin", "WI", 44.268543, -89.616508},
	{"Wyoming", "WY", 42.755966, -107.302490},
}

// States 州表为空时写入50州参考数据（幂等：非空直接跳过）
func States(db *gorm.DB, logger *logrus.Logger) error {
	var count int64
	if err := db.Model(&model.State{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	states := make([]*model.State, 0, len(stateData))
	for _, s := range stateData {
		states = append(states, &model.State{
			Name:         s.name,
			Abbreviation: s.abbr,
			CenterLat:    s.lat,
			CenterLng:    s.lng,
		})
	}
	if err := db.Create(&states).Error; err != nil {
		return err
	}
	logger.Infof("州参考数据初始化完成，共 %d 条", len(states))
	return nil
}

// Movies 电影表为空时写入示例目录
func Movies(db *gorm.DB, logger *logrus.Logger) error {
	var count int64
	if err := db.Model(&model.Movie{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	movies := []*model.Movie{
		{Name: "Inception", Price: 15, Description: "A mind-bending thriller about dreams within dreams.", Image: "inception.jpg", ReleaseYear: 2010, Director: "Christopher Nolan", Genre: "Sci-Fi", Rating: "PG-13"},
		{Name: "The Dark Knight", Price: 18, Description: "Batman faces the Joker in this epic superhero film.", Image: "dark.jpg", ReleaseYear: 2008, Director: "Christopher Nolan", Genre: "Action", Rating: "PG-13"},
		{Name: "Avatar", Price: 20, Description: "A sci-fi epic about the planet Pandora.", Image: "avatar.jpg", ReleaseYear: 2009, Director: "James Cameron", Genre: "Sci-Fi", Rating: "PG-13"},
		{Name: "Titanic", Price: 12, Description: "A romantic drama set on the ill-fated ship.", Image: "titanic.jpg", ReleaseYear: 1997, Director: "James Cameron", Genre: "Romance", Rating: "PG-13"},
		{Name: "Real Steel", Price: 14, Description: "A father and son bond through robot boxing.", Image: "real.jpeg", ReleaseYear: 2011, Director: "Shawn Levy", Genre: "Action", Rating: "PG-13"},
	}
	if err := db.Create(&movies).Error; err != nil {
		return err
	}
	logger.Infof("示例电影目录初始化完成，共 %d 条", len(movies))
	return nil
}
